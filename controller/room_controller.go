package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"push-fanout-service/controller/request"
	"push-fanout-service/controller/respond"
	"push-fanout-service/tool"
)

// BanUser godoc
// @Summary Ban a user in a room
// @Description Records a room-level ban. Banned users stop receiving push notifications for that room on the next fan-out pass.
// @Tags Room API
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body request.BanReq true "ban request"
// @Success 200 {object} respond.Response "success"
// @Failure 400 {object} respond.Response "bad request"
// @Failure 401 {object} respond.Response "authentication failed"
// @Router /v1/rooms/ban [post]
func BanUser(c *gin.Context) {
	var (
		t            int64 = tool.MakeTimestamp()
		requestModel *request.BanReq
	)

	if c.ShouldBindJSON(&requestModel) == nil {
		err := services.Bans.Ban(requestModel.Name, requestModel.Room, requestModel.Reason)
		if err != nil {
			c.JSONP(http.StatusOK, respond.RespErr(err, tool.MakeTimestamp()-t, respond.HttpsCodeError))
			return
		}

		responseData := map[string]interface{}{
			"name": requestModel.Name,
			"room": requestModel.Room,
		}
		c.JSONP(http.StatusOK, respond.RespSuccess(responseData, tool.MakeTimestamp()-t))
		return
	}

	c.JSONP(http.StatusInternalServerError, respond.RespErr(errors.New("bad request"), tool.MakeTimestamp()-t, respond.HttpsCodeError))
}

// UnbanUser godoc
// @Summary Lift a room-level ban
// @Description Removes an existing room-level ban for the named user.
// @Tags Room API
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body request.UnbanReq true "unban request"
// @Success 200 {object} respond.Response "success"
// @Failure 400 {object} respond.Response "bad request"
// @Failure 401 {object} respond.Response "authentication failed"
// @Router /v1/rooms/unban [post]
func UnbanUser(c *gin.Context) {
	var (
		t            int64 = tool.MakeTimestamp()
		requestModel *request.UnbanReq
	)

	if c.ShouldBindJSON(&requestModel) == nil {
		err := services.Bans.Unban(requestModel.Name, requestModel.Room)
		if err != nil {
			c.JSONP(http.StatusOK, respond.RespErr(err, tool.MakeTimestamp()-t, respond.HttpsCodeError))
			return
		}

		responseData := map[string]interface{}{
			"name": requestModel.Name,
			"room": requestModel.Room,
		}
		c.JSONP(http.StatusOK, respond.RespSuccess(responseData, tool.MakeTimestamp()-t))
		return
	}

	c.JSONP(http.StatusInternalServerError, respond.RespErr(errors.New("bad request"), tool.MakeTimestamp()-t, respond.HttpsCodeError))
}

// GetBannedInRoom godoc
// @Summary List bans in a room
// @Description Lists all active room-level bans for the given room.
// @Tags Room API
// @Produce json
// @Param room query string true "room name"
// @Success 200 {object} respond.Response "success"
// @Failure 400 {object} respond.Response "bad request"
// @Router /v1/rooms/banned [get]
func GetBannedInRoom(c *gin.Context) {
	var t int64 = tool.MakeTimestamp()

	room := c.Query("room")
	if room == "" {
		c.JSONP(http.StatusOK, respond.RespErr(errors.New("room is required"), tool.MakeTimestamp()-t, respond.HttpsCodeError))
		return
	}

	records, err := services.Bans.BannedIn(room)
	if err != nil {
		c.JSONP(http.StatusOK, respond.RespErr(err, tool.MakeTimestamp()-t, respond.HttpsCodeError))
		return
	}

	c.JSONP(http.StatusOK, respond.RespSuccess(records, tool.MakeTimestamp()-t))
}
