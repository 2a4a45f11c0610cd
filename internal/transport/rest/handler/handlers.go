package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nrel/windwatts-core/internal/logger"
	"github.com/nrel/windwatts-core/internal/model"
	"github.com/nrel/windwatts-core/internal/service"
	"github.com/nrel/windwatts-core/internal/wind"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go WindService

// WindService provides wind service methods.
type WindService interface {
	GetWindspeed(ctx context.Context, req *model.WindspeedRequest) (*model.WindspeedResponse, error)
	GetProduction(ctx context.Context, req *model.ProductionRequest) (*model.ProductionResponse, error)
	GetGridPoints(ctx context.Context, req *model.GridPointsRequest) ([]model.GridLocation, error)
	GetTurbines() []string
	GetModelInfo(modelName string) (*model.ModelInfoResponse, error)
	GetTimeseriesCSV(ctx context.Context, req *model.TimeseriesRequest) ([]byte, error)
	GetTimeseriesBatchZip(ctx context.Context, modelName string, req *model.TimeseriesBatchRequest) ([]byte, error)
}

// WindServer is a server for wind data processing.
type WindServer struct {
	service WindService
}

// NewWindServer creates new WindServer.
func NewWindServer(service WindService) *WindServer {
	return &WindServer{service}
}

// GetWindspeedHandler handles GetWindspeed request.
func (s *WindServer) GetWindspeedHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateWindspeedParams(mux.Vars(r), r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.service.GetWindspeed(r.Context(), req)
	if err != nil {
		s.respondServiceErr(w, fmt.Errorf("failed to get windspeed: %w", err))
		return
	}

	respond(w, http.StatusOK, resp)
}

// GetProductionHandler handles GetProduction request.
func (s *WindServer) GetProductionHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateProductionParams(mux.Vars(r), r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.service.GetProduction(r.Context(), req)
	if err != nil {
		s.respondServiceErr(w, fmt.Errorf("failed to get production: %w", err))
		return
	}

	respond(w, http.StatusOK, resp)
}

// GetGridPointsHandler handles GetGridPoints request.
func (s *WindServer) GetGridPointsHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateGridPointsParams(mux.Vars(r), r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	locations, err := s.service.GetGridPoints(r.Context(), req)
	if err != nil {
		s.respondServiceErr(w, fmt.Errorf("failed to get grid points: %w", err))
		return
	}

	respond(w, http.StatusOK, &model.NearestLocationsResponse{Locations: locations})
}

// GetTurbinesHandler handles GetTurbines request.
func (s *WindServer) GetTurbinesHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, &model.TurbinesResponse{AvailableTurbines: s.service.GetTurbines()})
}

// GetModelInfoHandler handles GetModelInfo request.
func (s *WindServer) GetModelInfoHandler(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetModelInfo(mux.Vars(r)["model"])
	if err != nil {
		s.respondServiceErr(w, fmt.Errorf("failed to get model info: %w", err))
		return
	}

	respond(w, http.StatusOK, info)
}

// GetTimeseriesHandler handles a single-location timeseries CSV download.
func (s *WindServer) GetTimeseriesHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateTimeseriesParams(mux.Vars(r), r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	content, err := s.service.GetTimeseriesCSV(r.Context(), req)
	if err != nil {
		s.respondServiceErr(w, fmt.Errorf("failed to get timeseries: %w", err))
		return
	}

	fileName := fmt.Sprintf("wind_data_%s.csv", req.GridIndex)
	respondFile(w, "text/csv; charset=utf-8", fileName, content)
}

// GetTimeseriesBatchHandler handles a multi-location timeseries ZIP download.
func (s *WindServer) GetTimeseriesBatchHandler(w http.ResponseWriter, r *http.Request) {
	modelName := mux.Vars(r)["model"]

	var req model.TimeseriesBatchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Locations) == 0 {
		respondErr(w, http.StatusBadRequest, errors.New("locations not provided in request body"))
		return
	}
	if req.Height == 0 {
		respondErr(w, http.StatusBadRequest, errors.New("height not provided in request body"))
		return
	}

	content, err := s.service.GetTimeseriesBatchZip(r.Context(), modelName, &req)
	if err != nil {
		s.respondServiceErr(w, fmt.Errorf("failed to get timeseries batch: %w", err))
		return
	}

	fileName := fmt.Sprintf("wind_data_%s_%d_points.zip", modelName, len(req.Locations))
	respondFile(w, "application/zip", fileName, content)
}

// respondServiceErr maps service and core errors onto http statuses. Core
// validation errors already carry the offending value and valid range, so
// their messages pass through to the client untouched.
func (s *WindServer) respondServiceErr(w http.ResponseWriter, err error) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		logger.Error(err)
	}
	respondErr(w, code, err)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrUnknownModel),
		errors.Is(err, service.ErrUnsupportedPeriod),
		errors.Is(err, service.ErrInvalidRounding):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoDataForLocation):
		return http.StatusNotFound
	}

	var (
		outOfRegion        *wind.OutOfRegionError
		heightOutOfRange   *wind.HeightOutOfRangeError
		unknownTurbine     *wind.UnknownTurbineError
		invalidGranularity *wind.InvalidGranularityError
		emptySeries        *wind.EmptySeriesError
	)

	switch {
	case errors.As(err, &outOfRegion),
		errors.As(err, &heightOutOfRange),
		errors.As(err, &unknownTurbine),
		errors.As(err, &invalidGranularity):
		return http.StatusBadRequest
	case errors.As(err, &emptySeries):
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

func validateWindspeedParams(vars map[string]string, params url.Values) (*model.WindspeedRequest, error) {
	lat, lng, err := parseLocation(params)
	if err != nil {
		return nil, err
	}

	height, err := parseHeight(params)
	if err != nil {
		return nil, err
	}

	period := params.Get("period")
	if period == "" {
		period = "all"
	}

	return &model.WindspeedRequest{
		Model:     vars["model"],
		Latitude:  lat,
		Longitude: lng,
		Height:    height,
		Period:    period,
	}, nil
}

func validateProductionParams(vars map[string]string, params url.Values) (*model.ProductionRequest, error) {
	lat, lng, err := parseLocation(params)
	if err != nil {
		return nil, err
	}

	height, err := parseHeight(params)
	if err != nil {
		return nil, err
	}

	turbine := params.Get("turbine")
	if turbine == "" {
		return nil, errors.New("turbine parameter not provided in query")
	}

	period := params.Get("period")
	if period == "" {
		period = "all"
	}

	var losses float64
	if lossesStr := params.Get("losses"); lossesStr != "" {
		losses, err = strconv.ParseFloat(lossesStr, 64)
		if err != nil {
			return nil, fmt.Errorf("losses parameter is not a number: %w", err)
		}
		if losses < 0 || losses >= 1 {
			return nil, errors.New("losses should be a fraction in [0, 1)")
		}
	}

	return &model.ProductionRequest{
		Model:      vars["model"],
		Latitude:   lat,
		Longitude:  lng,
		Height:     height,
		Turbine:    turbine,
		Period:     period,
		LossFactor: losses,
		Rounding:   params.Get("rounding"),
	}, nil
}

func validateGridPointsParams(vars map[string]string, params url.Values) (*model.GridPointsRequest, error) {
	lat, lng, err := parseLocation(params)
	if err != nil {
		return nil, err
	}

	limit := 1
	if limitStr := params.Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("limit parameter is not a number: %w", err)
		}
	}
	if limit < 1 || limit > 4 {
		return nil, errors.New("invalid limit, currently supporting up to 4 nearest grid points")
	}

	return &model.GridPointsRequest{
		Model:     vars["model"],
		Latitude:  lat,
		Longitude: lng,
		Limit:     limit,
	}, nil
}

func validateTimeseriesParams(vars map[string]string, params url.Values) (*model.TimeseriesRequest, error) {
	gridIndex := params.Get("gridIndex")
	if gridIndex == "" {
		return nil, errors.New("gridIndex parameter not provided in query")
	}

	height, err := parseHeight(params)
	if err != nil {
		return nil, err
	}

	var years []int
	if yearsStr := params.Get("years"); yearsStr != "" {
		for _, part := range strings.Split(yearsStr, ",") {
			year, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("years parameter contains a non-number: %w", err)
			}
			years = append(years, year)
		}
	}

	return &model.TimeseriesRequest{
		Model:     vars["model"],
		GridIndex: gridIndex,
		Height:    height,
		Turbine:   params.Get("turbine"),
		Years:     years,
	}, nil
}

func parseLocation(params url.Values) (float64, float64, error) {
	latStr := params.Get("lat")
	if latStr == "" {
		return 0, 0, errors.New("lat parameter not provided in query")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lat parameter is not a number: %w", err)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, errors.New("lat should be between -90 and 90")
	}

	lngStr := params.Get("lng")
	if lngStr == "" {
		return 0, 0, errors.New("lng parameter not provided in query")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("lng parameter is not a number: %w", err)
	}
	if lng < -180 || lng > 180 {
		return 0, 0, errors.New("lng should be between -180 and 180")
	}

	return lat, lng, nil
}

func parseHeight(params url.Values) (float64, error) {
	heightStr := params.Get("height")
	if heightStr == "" {
		return 0, errors.New("height parameter not provided in query")
	}

	height, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		return 0, fmt.Errorf("height parameter is not a number: %w", err)
	}
	if height <= 0 {
		return 0, errors.New("height should be more than 0")
	}

	return height, nil
}
