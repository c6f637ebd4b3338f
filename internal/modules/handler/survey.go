package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/modules/serializer"
	"github.com/quokkabay/quokkabay/internal/modules/service"
	"github.com/quokkabay/quokkabay/internal/pkg/validation"
)

type SurveyHandler struct {
	svc     service.SurveyService
	results service.ResultsService
}

func NewSurveyHandler(s service.SurveyService, r service.ResultsService) *SurveyHandler {
	return &SurveyHandler{
		svc:     s,
		results: r,
	}
}

type CreateSurveyReq struct {
	Hobbies []string `json:"hobbies" binding:"required,min=1" example:"Hiking,Cooking"`
	ZipCode string   `json:"zipCode" binding:"required,zipcode" example:"95032"`
}

type ListSurveysReq struct {
	Limit int `form:"limit,default=20" json:"limit" binding:"min=1,max=100" example:"20"`
}

type SurveyExistsResp struct {
	Exists bool `json:"exists"`
}

type SurveyResultsResp struct {
	Survey     *model.Survey    `json:"survey"`
	Activities []model.Activity `json:"activities"`
	Cached     bool             `json:"cached"`
}

// CreateSurvey godoc
//
//	@Summary		Submit survey
//	@Description	Store the caller's hobbies and zip code. Activities are generated on first view of the results.
//	@Tags			survey
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateSurveyReq	true	"CreateSurvey payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.Survey}
//	@Failure		400	{object}	serializer.Response
//	@Failure		401	{object}	serializer.Response
//	@Router			/surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req := CreateSurveyReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(validation.Message(err), nil))
		return
	}

	survey, err := h.svc.Create(c.Request.Context(), userID, service.CreateSurveyInput{
		Hobbies: req.Hobbies,
		ZipCode: req.ZipCode,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(survey))
}

// ListSurveys godoc
//
//	@Summary		List surveys
//	@Description	List the caller's surveys, newest first
//	@Tags			survey
//	@Produce		json
//	@Param			limit	query	integer	false	"Limit of surveys to return, default 20. Max 100."
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Survey}
//	@Router			/surveys [get]
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req := ListSurveysReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(validation.Message(err), nil))
		return
	}

	surveys, err := h.svc.List(c.Request.Context(), userID, req.Limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	if surveys == nil {
		surveys = []*model.Survey{}
	}

	c.JSON(http.StatusOK, serializer.OK(surveys))
}

// SurveyExists godoc
//
//	@Summary		Check for surveys
//	@Description	Report whether the caller has submitted any survey
//	@Tags			survey
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.SurveyExistsResp}
//	@Router			/surveys/exists [get]
func (h *SurveyHandler) SurveyExists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	exists, err := h.svc.Exists(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(SurveyExistsResp{Exists: exists}))
}

// GetSurvey godoc
//
//	@Summary		Get survey
//	@Description	Get one of the caller's surveys by id, or the most recent one with "latest"
//	@Tags			survey
//	@Produce		json
//	@Param			survey_id	path	string	true	"Survey ID or latest"	Example(latest)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Survey}
//	@Failure		404	{object}	serializer.Response
//	@Router			/surveys/{survey_id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ref, err := service.ParseSurveyRef(c.Param("survey_id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	survey, err := h.svc.Get(c.Request.Context(), userID, ref)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(survey))
}

// GetSurveyResults godoc
//
//	@Summary		Get survey results
//	@Description	Return the activities for a survey, generating and storing them on first view
//	@Tags			survey
//	@Produce		json
//	@Param			survey_id	path	string	true	"Survey ID or latest"	Example(latest)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.SurveyResultsResp}
//	@Failure		401	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Failure		500	{object}	serializer.Response
//	@Router			/surveys/{survey_id}/results [get]
func (h *SurveyHandler) GetSurveyResults(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ref, err := service.ParseSurveyRef(c.Param("survey_id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	res, err := h.results.GetOrCreate(c.Request.Context(), userID, ref)
	if err != nil {
		respondErr(c, err)
		return
	}

	activities := res.Activities
	if activities == nil {
		activities = []model.Activity{}
	}
	c.JSON(http.StatusOK, serializer.OK(SurveyResultsResp{
		Survey:     res.Survey,
		Activities: activities,
		Cached:     res.Cached,
	}))
}
