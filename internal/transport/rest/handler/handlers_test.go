package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/tj/assert"

	"github.com/nrel/windwatts-core/internal/model"
	"github.com/nrel/windwatts-core/internal/service"
	mock "github.com/nrel/windwatts-core/internal/transport/rest/handler/mock"
	"github.com/nrel/windwatts-core/internal/wind"
)

var errTest = errors.New("test error")

func newTestRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()

	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}

	return mux.SetURLVars(r, map[string]string{"model": "era5"})
}

func TestGetWindspeedHandler(t *testing.T) {
	avg := 6.5

	cases := []struct {
		name           string
		target         string
		expectedStatus int
		expectedError  error
		isMockCalled   bool
	}{
		{
			name:           "missing lat",
			target:         "/era5/windspeed?lng=-105.17&height=50",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing height",
			target:         "/era5/windspeed?lat=39.75&lng=-105.17",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown model",
			target:         "/era5/windspeed?lat=39.75&lng=-105.17&height=50",
			expectedStatus: http.StatusBadRequest,
			expectedError:  service.ErrUnknownModel,
			isMockCalled:   true,
		},
		{
			name:           "out of region",
			target:         "/era5/windspeed?lat=10.0&lng=-105.17&height=50",
			expectedStatus: http.StatusBadRequest,
			expectedError:  &wind.OutOfRegionError{Latitude: 10.0, Longitude: -105.17, Dataset: "era5"},
			isMockCalled:   true,
		},
		{
			name:           "service error",
			target:         "/era5/windspeed?lat=39.75&lng=-105.17&height=50",
			expectedStatus: http.StatusInternalServerError,
			expectedError:  errTest,
			isMockCalled:   true,
		},
		{
			name:           "ok",
			target:         "/era5/windspeed?lat=39.75&lng=-105.17&height=50",
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockWindService(ctrl)
			s := NewWindServer(mockService)

			w := httptest.NewRecorder()
			r := newTestRequest(t, http.MethodGet, tc.target, nil)

			if tc.isMockCalled {
				var resp *model.WindspeedResponse
				if tc.expectedError == nil {
					resp = &model.WindspeedResponse{GlobalAvg: &avg}
				}
				mockService.EXPECT().
					GetWindspeed(gomock.Any(), gomock.Any()).
					Return(resp, tc.expectedError)
			}

			s.GetWindspeedHandler(w, r)

			assert.Equal(t, tc.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestGetProductionHandler(t *testing.T) {
	kwh := 12345.0

	cases := []struct {
		name           string
		target         string
		expectedStatus int
		expectedError  error
		isMockCalled   bool
	}{
		{
			name:           "missing turbine",
			target:         "/era5/production?lat=39.75&lng=-105.17&height=50",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "losses out of range",
			target:         "/era5/production?lat=39.75&lng=-105.17&height=50&turbine=nrel-reference-100kW&losses=1.5",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown turbine",
			target:         "/era5/production?lat=39.75&lng=-105.17&height=50&turbine=no-such-turbine",
			expectedStatus: http.StatusBadRequest,
			expectedError:  &wind.UnknownTurbineError{Key: "no-such-turbine"},
			isMockCalled:   true,
		},
		{
			name:           "invalid rounding",
			target:         "/era5/production?lat=39.75&lng=-105.17&height=50&turbine=nrel-reference-100kW&rounding=ceiling",
			expectedStatus: http.StatusBadRequest,
			expectedError:  service.ErrInvalidRounding,
			isMockCalled:   true,
		},
		{
			name:           "no data",
			target:         "/era5/production?lat=39.75&lng=-105.17&height=50&turbine=nrel-reference-100kW",
			expectedStatus: http.StatusNotFound,
			expectedError:  service.ErrNoDataForLocation,
			isMockCalled:   true,
		},
		{
			name:           "ok",
			target:         "/era5/production?lat=39.75&lng=-105.17&height=50&turbine=nrel-reference-100kW&losses=0.15",
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockWindService(ctrl)
			s := NewWindServer(mockService)

			w := httptest.NewRecorder()
			r := newTestRequest(t, http.MethodGet, tc.target, nil)

			if tc.isMockCalled {
				var resp *model.ProductionResponse
				if tc.expectedError == nil {
					resp = &model.ProductionResponse{EnergyProduction: &kwh}
				}
				mockService.EXPECT().
					GetProduction(gomock.Any(), gomock.Any()).
					Return(resp, tc.expectedError)
			}

			s.GetProductionHandler(w, r)

			assert.Equal(t, tc.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestGetGridPointsHandler(t *testing.T) {
	cases := []struct {
		name           string
		target         string
		expectedStatus int
		expectedError  error
		isMockCalled   bool
	}{
		{
			name:           "limit too large",
			target:         "/era5/grid-points?lat=39.75&lng=-105.17&limit=9",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "limit not a number",
			target:         "/era5/grid-points?lat=39.75&lng=-105.17&limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			target:         "/era5/grid-points?lat=39.75&lng=-105.17",
			expectedStatus: http.StatusInternalServerError,
			expectedError:  errTest,
			isMockCalled:   true,
		},
		{
			name:           "ok",
			target:         "/era5/grid-points?lat=39.75&lng=-105.17&limit=2",
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockWindService(ctrl)
			s := NewWindServer(mockService)

			w := httptest.NewRecorder()
			r := newTestRequest(t, http.MethodGet, tc.target, nil)

			if tc.isMockCalled {
				var locations []model.GridLocation
				if tc.expectedError == nil {
					locations = []model.GridLocation{{Index: "e1", Latitude: 39.74, Longitude: -105.18}}
				}
				mockService.EXPECT().
					GetGridPoints(gomock.Any(), gomock.Any()).
					Return(locations, tc.expectedError)
			}

			s.GetGridPointsHandler(w, r)

			assert.Equal(t, tc.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestGetTurbinesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock.NewMockWindService(ctrl)
	s := NewWindServer(mockService)

	mockService.EXPECT().
		GetTurbines().
		Return([]string{"nrel-reference-2.5kW", "nrel-reference-100kW"})

	w := httptest.NewRecorder()
	r := newTestRequest(t, http.MethodGet, "/turbines", nil)

	s.GetTurbinesHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	var resBody model.TurbinesResponse
	err := json.NewDecoder(w.Result().Body).Decode(&resBody)
	assert.Nil(t, err)
	assert.Len(t, resBody.AvailableTurbines, 2)
}

func TestGetModelInfoHandler(t *testing.T) {
	cases := []struct {
		name           string
		expectedStatus int
		expectedError  error
	}{
		{
			name:           "unknown model",
			expectedStatus: http.StatusBadRequest,
			expectedError:  service.ErrUnknownModel,
		},
		{
			name:           "ok",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockWindService(ctrl)
			s := NewWindServer(mockService)

			var info *model.ModelInfoResponse
			if tc.expectedError == nil {
				info = &model.ModelInfoResponse{Model: "era5"}
			}
			mockService.EXPECT().
				GetModelInfo("era5").
				Return(info, tc.expectedError)

			w := httptest.NewRecorder()
			r := newTestRequest(t, http.MethodGet, "/era5/info", nil)

			s.GetModelInfoHandler(w, r)

			assert.Equal(t, tc.expectedStatus, w.Result().StatusCode)
		})
	}
}

func TestGetTimeseriesHandler(t *testing.T) {
	cases := []struct {
		name           string
		target         string
		expectedStatus int
		expectedError  error
		isMockCalled   bool
	}{
		{
			name:           "missing grid index",
			target:         "/era5/timeseries?height=50",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad years",
			target:         "/era5/timeseries?gridIndex=e1&height=50&years=2020,abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "ok",
			target:         "/era5/timeseries?gridIndex=e1&height=50&years=2020",
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockWindService(ctrl)
			s := NewWindServer(mockService)

			if tc.isMockCalled {
				mockService.EXPECT().
					GetTimeseriesCSV(gomock.Any(), gomock.Any()).
					Return([]byte("time,windspeed_50m,winddirection_50m\n"), tc.expectedError)
			}

			w := httptest.NewRecorder()
			r := newTestRequest(t, http.MethodGet, tc.target, nil)

			s.GetTimeseriesHandler(w, r)

			assert.Equal(t, tc.expectedStatus, w.Result().StatusCode)

			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, "text/csv; charset=utf-8", w.Result().Header.Get("Content-Type"))
				assert.Contains(t, w.Result().Header.Get("Content-Disposition"), "wind_data_e1.csv")
			}
		})
	}
}

func TestGetTimeseriesBatchHandler(t *testing.T) {
	validBody := &model.TimeseriesBatchRequest{
		Locations: []model.GridLocation{
			{Index: "e1", Latitude: 39.74, Longitude: -105.18},
		},
		Height: 50,
	}

	cases := []struct {
		name           string
		body           interface{}
		rawBody        []byte
		expectedStatus int
		expectedError  error
		isMockCalled   bool
	}{
		{
			name:           "malformed body",
			rawBody:        []byte("{not json"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no locations",
			body:           &model.TimeseriesBatchRequest{Height: 50},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no height",
			body:           &model.TimeseriesBatchRequest{Locations: validBody.Locations},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			body:           validBody,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  errTest,
			isMockCalled:   true,
		},
		{
			name:           "ok",
			body:           validBody,
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockWindService(ctrl)
			s := NewWindServer(mockService)

			reqBody := tc.rawBody
			if tc.body != nil {
				var err error
				reqBody, err = json.Marshal(tc.body)
				assert.Nil(t, err)
			}

			if tc.isMockCalled {
				var content []byte
				if tc.expectedError == nil {
					content = []byte("PK")
				}
				mockService.EXPECT().
					GetTimeseriesBatchZip(gomock.Any(), "era5", gomock.Any()).
					Return(content, tc.expectedError)
			}

			w := httptest.NewRecorder()
			r := newTestRequest(t, http.MethodPost, "/era5/timeseries/batch", reqBody)

			s.GetTimeseriesBatchHandler(w, r)

			assert.Equal(t, tc.expectedStatus, w.Result().StatusCode)

			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, "application/zip", w.Result().Header.Get("Content-Type"))
			}
		})
	}
}
