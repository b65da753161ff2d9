package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/depotgrid/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type plannerAPI struct {
	plannerService PlannerService
	log            *zap.Logger
}

func New(plannerService PlannerService, log *zap.Logger) *plannerAPI {
	return &plannerAPI{
		plannerService: plannerService,
		log:            log,
	}
}

func (api *plannerAPI) Routes(group *helper.RouteGroup) {
	group.POST("/facilities/generate", api.generateFacilities)
	group.POST("/routes/plan", api.planRoutes)
	group.POST("/layers", api.layers)
	group.GET("/classify", api.classify)
	group.GET("/status", api.status)
}

func (api *plannerAPI) validationError(w http.ResponseWriter, r *http.Request,
	validate *validator.Validate, err error) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	vv := translateError(err, trans)
	vvString := []string{}
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
}

// generateFacilities godoc
//
//	@Summary		generate candidate depot facilities
//	@Description	sample a jittered grid over the planning area, keep only points inside a region boundary and attribute each with synthetic capacity figures.
//	@Tags			planner
//	@Param			body	body	generateFacilitiesRequest	true	"grid shape"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/facilities/generate [post]
//	@Success		200	{object}	generateFacilitiesResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		412	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *plannerAPI) generateFacilities(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request generateFacilitiesRequest
		err     error
	)
	if r.ContentLength > 0 {
		err = json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	request.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		api.validationError(w, r, validate, err)
		return
	}

	facilities, err := api.plannerService.GenerateFacilities(r.Context(),
		request.Cols, request.Rows, request.JitterFraction)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewGenerateFacilitiesResponse(facilities)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// planRoutes godoc
//
//	@Summary		plan near-target routes for every region
//	@Description	walk each region's facilities in random order and search for a driving route close to the target duration, up to routes_per_region per region. a long-running call, progress streams over the websocket port.
//	@Tags			planner
//	@Param			body	body	planRoutesRequest	true	"per-region quota"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/routes/plan [post]
//	@Success		200	{object}	planRoutesResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		412	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *plannerAPI) planRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request planRoutesRequest
		err     error
	)
	if r.ContentLength > 0 {
		err = json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	request.applyDefaults()

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		api.validationError(w, r, validate, err)
		return
	}

	routes, err := api.plannerService.PlanRoutes(r.Context(), request.RoutesPerRegion)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewPlanRoutesResponse(routes)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// layers godoc
//
//	@Summary		project the filtered display layers
//	@Description	apply the supplied selection criteria to the loaded datasets and return the visible geojson layers. omitted fields keep the all-visible defaults.
//	@Tags			planner
//	@Param			body	body	layersRequest	true	"selection criteria"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/layers [post]
//	@Success		200	{object}	projection.Layers
//	@Failure		400	{object}	errorResponse
//	@Failure		412	{object}	errorResponse
//	@Failure		500	{object}	errorResponse
func (api *plannerAPI) layers(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request layersRequest
		err     error
	)
	if r.ContentLength > 0 {
		err = json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		api.validationError(w, r, validate, err)
		return
	}

	criteria := request.ToCriteria(api.plannerService.Regions())

	layers, err := api.plannerService.ProjectLayers(criteria)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": layers}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// classify godoc
//
//	@Summary		classify a point into its region
//	@Description	point-in-polygon lookup against the loaded boundaries. 404 when the point is outside every region.
//	@Tags			planner
//	@Param			lon	query	number	true	"longitude"
//	@Param			lat	query	number	true	"latitude"
//	@Produce		application/json
//	@Router			/classify [get]
//	@Success		200	{object}	classifyResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
func (api *plannerAPI) classify(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request classifyRequest
		err     error
	)

	query := r.URL.Query()

	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		api.validationError(w, r, validate, err)
		return
	}

	region, err := api.plannerService.ClassifyPoint(request.Lon, request.Lat)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewClassifyResponse(request.Lon, request.Lat, region)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// status godoc
//
//	@Summary		session status
//	@Description	current data-readiness state plus dataset counts.
//	@Tags			planner
//	@Produce		application/json
//	@Router			/status [get]
//	@Success		200	{object}	statusResponse
func (api *plannerAPI) status(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	report := api.plannerService.Status()

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": statusResponse{
		State:         report.State,
		Regions:       report.Regions,
		FacilityCount: report.FacilityCount,
		RouteCount:    report.RouteCount,
	}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
