package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"greenhouse/entities"
	"greenhouse/logger"
	"greenhouse/pkg/experiment/controller"
	exprepo "greenhouse/pkg/experiment/repository"
	expservice "greenhouse/pkg/experiment/service"
	measrepo "greenhouse/pkg/measure/repository"
)

const timestampLayout = "2006-01-02T15:04:05"

type ExperimentCtrl struct {
	experiments exprepo.ExperimentRepository
	measures    measrepo.MeasureRepository
	active      expservice.ActiveExperimentService
}

func New(experiments exprepo.ExperimentRepository, measures measrepo.MeasureRepository, active expservice.ActiveExperimentService) controller.ExperimentController {
	return &ExperimentCtrl{experiments: experiments, measures: measures, active: active}
}

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func (h *ExperimentCtrl) List(c echo.Context) error {
	out, err := h.experiments.FindAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExperimentCtrl) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid experiment id"})
	}
	e, err := h.experiments.FindByID(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if e == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Experiment not found"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *ExperimentCtrl) GetByName(c echo.Context) error {
	e, err := h.experiments.FindByName(c.Param("name"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if e == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Experiment not found"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *ExperimentCtrl) GetBySpecies(c echo.Context) error {
	out, err := h.experiments.FindBySpecies(c.Param("species"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExperimentCtrl) Create(c echo.Context) error {
	var e entities.Experiment
	if err := c.Bind(&e); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if e.StartDate != nil && e.EndDate != nil && e.EndDate.Before(*e.StartDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "end date must not precede start date"})
	}
	if err := h.experiments.Create(&e); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *ExperimentCtrl) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid experiment id"})
	}
	ok, err := h.experiments.Exists(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Experiment not found"})
	}
	var e entities.Experiment
	if err := c.Bind(&e); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if e.StartDate != nil && e.EndDate != nil && e.EndDate.Before(*e.StartDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "end date must not precede start date"})
	}
	e.ID = id
	if err := h.experiments.Update(&e); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *ExperimentCtrl) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid experiment id"})
	}
	ok, err := h.experiments.Exists(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Experiment not found"})
	}
	if err := h.experiments.Delete(id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ExperimentCtrl) Activate(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid experiment id"})
	}
	ok, err := h.active.SetCurrentID(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Experiment with ID " + strconv.FormatUint(uint64(id), 10) + " not found",
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Experiment " + strconv.FormatUint(uint64(id), 10) + " activated for sensor data collection",
		"experimentId": id,
	})
}

func (h *ExperimentCtrl) Active(c echo.Context) error {
	e, err := h.active.Current()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if e == nil {
		id := h.active.CurrentID()
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"message":      "Active experiment with ID " + strconv.FormatUint(uint64(id), 10) + " not found",
			"experimentId": id,
		})
	}
	return c.JSON(http.StatusOK, e)
}

// window reads the optional startDate/endDate query parameters.
func window(c echo.Context) (from, to *time.Time, err error) {
	parse := func(name string) (*time.Time, error) {
		v := c.QueryParam(name)
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse(timestampLayout, v)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	if from, err = parse("startDate"); err != nil {
		return nil, nil, err
	}
	to, err = parse("endDate")
	return from, to, err
}

// loadMeasurements resolves the :id experiment and its (optionally
// windowed) measurements. Failures come back as *echo.HTTPError for the
// caller to return as-is.
func (h *ExperimentCtrl) loadMeasurements(c echo.Context) (uint, []entities.Measurement, error) {
	id, err := idParam(c)
	if err != nil {
		return 0, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid experiment id")
	}
	ok, err := h.experiments.Exists(id)
	if err != nil {
		return 0, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return 0, nil, echo.NewHTTPError(http.StatusNotFound, "Experiment not found")
	}
	from, to, err := window(c)
	if err != nil {
		return 0, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid date parameter")
	}
	out, err := h.measures.ByExperiment(id, from, to)
	if err != nil {
		return 0, nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return id, out, nil
}

func (h *ExperimentCtrl) Measurements(c echo.Context) error {
	_, out, err := h.loadMeasurements(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExperimentCtrl) LatestMeasurements(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid experiment id"})
	}
	ok, err := h.experiments.Exists(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Experiment not found"})
	}
	out, err := h.measures.Latest(id, 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExperimentCtrl) ExportCSV(c echo.Context) error {
	id, measurements, err := h.loadMeasurements(c)
	if err != nil {
		return err
	}
	if len(measurements) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	delim := ','
	if d := c.QueryParam("delimiter"); d != "" {
		delim = []rune(d)[0]
	}

	content, err := exportFile(measurementTable(measurements), "csv", delim)
	if err != nil {
		logger.Errorf("export csv: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error generating CSV: " + err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		"attachment; filename=experiment_"+strconv.FormatUint(uint64(id), 10)+"_data.csv")
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, content)
}

func (h *ExperimentCtrl) ExportJSON(c echo.Context) error {
	id, measurements, err := h.loadMeasurements(c)
	if err != nil {
		return err
	}
	if len(measurements) == 0 {
		return c.NoContent(http.StatusNoContent)
	}

	content, err := exportFile(measurementTable(measurements), "json", 0)
	if err != nil {
		logger.Errorf("export json: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Error generating JSON: " + err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		"attachment; filename=experiment_"+strconv.FormatUint(uint64(id), 10)+"_data.json")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, content)
}
