package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"push-fanout-service/controller/request"
	"push-fanout-service/controller/respond"
	"push-fanout-service/service/fanout_service"
	"push-fanout-service/service/subscription_service"
	"push-fanout-service/tool"
)

// ReloadSubscriptions godoc
// @Summary Reload the subscription cache
// @Description Rebuilds the in-memory subscription snapshot from the backing store. On failure the previous snapshot stays active.
// @Tags Fanout API
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} respond.Response "success"
// @Failure 401 {object} respond.Response "authentication failed"
// @Failure 500 {object} respond.Response "internal error"
// @Router /v1/fanout/reload [post]
func ReloadSubscriptions(c *gin.Context) {
	var t int64 = tool.MakeTimestamp()

	if err := services.Cache.Reload(c.Request.Context()); err != nil {
		c.JSONP(http.StatusOK, respond.RespErr(err, tool.MakeTimestamp()-t, respond.HttpsCodeError))
		return
	}

	responseData := map[string]interface{}{
		"subscriptions": services.Cache.Len(),
	}
	c.JSONP(http.StatusOK, respond.RespSuccess(responseData, tool.MakeTimestamp()-t))
}

// DispatchLine godoc
// @Summary Dispatch one chat line
// @Description Runs one synchronous fan-out pass for the given chat line and reports how many devices were targeted.
// @Tags Fanout API
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body request.DispatchReq true "chat line"
// @Success 200 {object} respond.Response "success"
// @Failure 400 {object} respond.Response "bad request"
// @Failure 401 {object} respond.Response "authentication failed"
// @Router /v1/fanout/dispatch [post]
func DispatchLine(c *gin.Context) {
	var (
		t            int64 = tool.MakeTimestamp()
		requestModel *request.DispatchReq
	)

	if c.ShouldBindJSON(&requestModel) == nil {
		line := fanout_service.ChatLine{
			SenderID: requestModel.SenderID,
			Sender:   requestModel.Sender,
			Room:     requestModel.Room,
			Content:  requestModel.Content,
		}
		recipients := services.Center.Dispatch(c.Request.Context(), line)

		responseData := map[string]interface{}{
			"recipients": recipients,
		}
		c.JSONP(http.StatusOK, respond.RespSuccess(responseData, tool.MakeTimestamp()-t))
		return
	}

	c.JSONP(http.StatusInternalServerError, respond.RespErr(errors.New("bad request"), tool.MakeTimestamp()-t, respond.HttpsCodeError))
}

// GetSubscriptionByToken godoc
// @Summary Get a subscription by device token
// @Description Looks up the cached subscription registered for a device token.
// @Tags Fanout API
// @Produce json
// @Param deviceToken query string true "device token"
// @Success 200 {object} respond.Response "success"
// @Failure 400 {object} respond.Response "bad request"
// @Router /v1/fanout/subscription [get]
func GetSubscriptionByToken(c *gin.Context) {
	var t int64 = tool.MakeTimestamp()

	deviceToken := c.Query("deviceToken")
	if deviceToken == "" {
		c.JSONP(http.StatusOK, respond.RespErr(errors.New("deviceToken is required"), tool.MakeTimestamp()-t, respond.HttpsCodeError))
		return
	}

	sub, ok := services.Cache.LookupByToken(deviceToken)
	if !ok {
		c.JSONP(http.StatusOK, respond.RespErr(errors.New("subscription not found"), tool.MakeTimestamp()-t, respond.HttpsCodeError))
		return
	}

	c.JSONP(http.StatusOK, respond.RespSuccess(subscriptionView(sub), tool.MakeTimestamp()-t))
}

// GetSubscriptionsByUser godoc
// @Summary Get all subscriptions of a user
// @Description Lists the cached subscriptions owned by the given user id.
// @Tags Fanout API
// @Produce json
// @Param userId query int true "user id"
// @Success 200 {object} respond.Response "success"
// @Failure 400 {object} respond.Response "bad request"
// @Router /v1/fanout/subscriptions [get]
func GetSubscriptionsByUser(c *gin.Context) {
	var t int64 = tool.MakeTimestamp()

	userIDStr := c.Query("userId")
	if userIDStr == "" {
		c.JSONP(http.StatusOK, respond.RespErr(errors.New("userId is required"), tool.MakeTimestamp()-t, respond.HttpsCodeError))
		return
	}
	userID := tool.StrToInt64(userIDStr)

	subs := services.Cache.LookupByUser(userID)
	views := make([]map[string]interface{}, 0, len(subs))
	for _, sub := range subs {
		views = append(views, subscriptionView(sub))
	}

	c.JSONP(http.StatusOK, respond.RespSuccess(views, tool.MakeTimestamp()-t))
}

func subscriptionView(sub *subscription_service.Subscription) map[string]interface{} {
	rooms := make([]string, 0, len(sub.Rooms))
	for room := range sub.Rooms {
		rooms = append(rooms, room)
	}
	return map[string]interface{}{
		"deviceToken": sub.DeviceToken,
		"userId":      sub.UserID,
		"name":        sub.Name,
		"rooms":       rooms,
		"regex":       sub.Regex.String(),
	}
}
