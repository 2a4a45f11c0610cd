package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/nrel/windwatts-core/internal/config"
	"github.com/nrel/windwatts-core/internal/logger"
	"github.com/nrel/windwatts-core/internal/transport/rest/handler"
)

// RunAPI runs the WindWatts API.
func RunAPI(cfg *config.Config, service handler.WindService) error {
	server := handler.NewWindServer(service)

	r := mux.NewRouter()
	r.Use(requestLogging)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/turbines", server.GetTurbinesHandler).Methods("GET")
	v1.HandleFunc("/{model}/windspeed", server.GetWindspeedHandler).Methods("GET")
	v1.HandleFunc("/{model}/production", server.GetProductionHandler).Methods("GET")
	v1.HandleFunc("/{model}/grid-points", server.GetGridPointsHandler).Methods("GET")
	v1.HandleFunc("/{model}/info", server.GetModelInfoHandler).Methods("GET")
	v1.HandleFunc("/{model}/timeseries", server.GetTimeseriesHandler).Methods("GET")
	v1.HandleFunc("/{model}/timeseries/batch", server.GetTimeseriesBatchHandler).Methods("POST")

	logger.Infof("Starting WindWatts api at port %s", cfg.Port)

	options := setupCorsOptions(cfg.Origin)
	return http.ListenAndServe(":"+cfg.Port, handlers.CORS(options...)(r))
}
