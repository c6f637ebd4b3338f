package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quokkabay/quokkabay/internal/modules/model"
	"github.com/quokkabay/quokkabay/internal/modules/serializer"
	"github.com/quokkabay/quokkabay/internal/pkg/validation"
)

type HobbiesResp struct {
	Hobbies  []string `json:"hobbies"`
	MaxCount int      `json:"max_count"`
	FreeForm bool     `json:"free_form"`
}

// ListHobbies godoc
//
//	@Summary		Hobby vocabulary
//	@Description	The hobbies offered by the survey form. Other values are accepted too.
//	@Tags			survey
//	@Produce		json
//	@Success		200	{object}	serializer.Response{data=handler.HobbiesResp}
//	@Router			/hobbies [get]
func ListHobbies(c *gin.Context) {
	c.JSON(http.StatusOK, serializer.OK(HobbiesResp{
		Hobbies:  model.HobbyOptions,
		MaxCount: validation.MaxHobbies,
		FreeForm: true,
	}))
}
