package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/modules/serializer"
	"github.com/quokkabay/quokkabay/internal/modules/service"
)

type FavoriteHandler struct {
	svc service.FavoriteService
}

func NewFavoriteHandler(s service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: s}
}

type AddFavoriteReq struct {
	SurveyID *uuid.UUID     `json:"surveyId" example:"123e4567-e89b-12d3-a456-426614174000"`
	Activity model.Activity `json:"activity"`
}

// RemoveFavoriteReq may also be given as query parameters.
type RemoveFavoriteReq struct {
	ActivityName string  `json:"activityName" form:"activityName" example:"Sunset hike at Sierra Azul"`
	ActivityLink *string `json:"activityLink" form:"activityLink" example:"https://www.alltrails.com/"`
}

type FavoriteView struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	SurveyID  *uuid.UUID     `json:"survey_id"`
	Activity  model.Activity `json:"activity"`
}

func toFavoriteView(f *model.Favorite) FavoriteView {
	return FavoriteView{
		ID:        f.ID,
		CreatedAt: f.CreatedAt,
		SurveyID:  f.SurveyID,
		Activity:  f.Activity.Data(),
	}
}

// ListFavorites godoc
//
//	@Summary		List favorites
//	@Description	List the caller's favorite activities, newest first
//	@Tags			favorite
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]handler.FavoriteView}
//	@Failure		401	{object}	serializer.Response
//	@Router			/favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	favs, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	out := make([]FavoriteView, 0, len(favs))
	for _, f := range favs {
		out = append(out, toFavoriteView(f))
	}
	c.JSON(http.StatusOK, serializer.OK(out))
}

// AddFavorite godoc
//
//	@Summary		Save favorite
//	@Description	Save an activity as a favorite. Saving the same name and link again replaces the stored activity.
//	@Tags			favorite
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.AddFavoriteReq	true	"AddFavorite payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=handler.FavoriteView}
//	@Failure		400	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/favorites [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req := AddFavoriteReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid activity payload", nil))
		return
	}

	fav, err := h.svc.Add(c.Request.Context(), userID, service.AddFavoriteInput{
		SurveyID: req.SurveyID,
		Activity: req.Activity,
	})
	if errors.Is(err, service.ErrInvalidActivity) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Invalid activity payload", nil))
		return
	}
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(toFavoriteView(fav)))
}

// RemoveFavorite godoc
//
//	@Summary		Remove favorite
//	@Description	Remove a favorite by activity name and link. Without a link only the favorite saved without one is removed.
//	@Tags			favorite
//	@Accept			json
//	@Produce		json
//	@Param			payload			body	handler.RemoveFavoriteReq	false	"RemoveFavorite payload"
//	@Param			activityName	query	string						false	"Activity name, when no body is sent"
//	@Param			activityLink	query	string						false	"Activity link, when no body is sent"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Failure		400	{object}	serializer.Response
//	@Router			/favorites [delete]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req := RemoveFavoriteReq{}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	if req.ActivityName == "" {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
			return
		}
	}

	err := h.svc.Remove(c.Request.Context(), userID, req.ActivityName, req.ActivityLink)
	if errors.Is(err, service.ErrInvalidActivity) {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("Missing activityName", nil))
		return
	}
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(nil))
}
