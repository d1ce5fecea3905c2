package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"greenhouse/logger"
	exprepo "greenhouse/pkg/experiment/repository"
	"greenhouse/pkg/measure/controller"
	measrepo "greenhouse/pkg/measure/repository"
	"greenhouse/pkg/measure/service"
)

type MeasureCtrl struct {
	experiments exprepo.ExperimentRepository
	measures    measrepo.MeasureRepository
	svc         service.MeasureService
}

func New(experiments exprepo.ExperimentRepository, measures measrepo.MeasureRepository, svc service.MeasureService) controller.MeasureController {
	return &MeasureCtrl{experiments: experiments, measures: measures, svc: svc}
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// requireExperiment answers whether :id names a known experiment,
// writing the error response when it does not.
func (h *MeasureCtrl) requireExperiment(c echo.Context) (uint, bool) {
	id, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid experiment id"})
		return 0, false
	}
	ok, err := h.experiments.Exists(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return 0, false
	}
	if !ok {
		c.JSON(http.StatusNotFound, map[string]string{"error": "Experiment not found with id: " + strconv.FormatUint(uint64(id), 10)})
		return 0, false
	}
	return id, true
}

func (h *MeasureCtrl) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid measurement id"})
	}
	m, err := h.measures.FindByID(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if m == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Measurement not found with id: " + strconv.FormatUint(uint64(id), 10)})
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MeasureCtrl) Add(c echo.Context) error {
	id, ok := h.requireExperiment(c)
	if !ok {
		return nil
	}
	var row map[string]string
	if err := c.Bind(&row); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	logger.Infof("received measurement data for experiment %d", id)

	m, err := h.svc.AddRow(id, row)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":  verr.Msg,
			"status": "Invalid data stored for analysis",
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error processing measurement data: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MeasureCtrl) Upload(c echo.Context) error {
	id, ok := h.requireExperiment(c)
	if !ok {
		return nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error reading file: " + err.Error()})
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error reading file: " + err.Error()})
	}

	hasHeaders := c.FormValue("hasHeaders") != "false"
	delimiter := ','
	if d := c.FormValue("delimiter"); d != "" {
		delimiter = []rune(d)[0]
	}

	report, err := h.svc.Upload(id, data, hasHeaders, delimiter)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Msg})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}

func (h *MeasureCtrl) Invalid(c echo.Context) error {
	id, ok := h.requireExperiment(c)
	if !ok {
		return nil
	}
	out, err := h.measures.InvalidByExperiment(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MeasureCtrl) InvalidByID(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	inv, err := h.measures.InvalidByID(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if inv == nil {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *MeasureCtrl) DeleteInvalid(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	ok, err := h.measures.InvalidExists(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	if err := h.measures.DeleteInvalid(id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
