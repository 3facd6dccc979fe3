package auth

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"push-fanout-service/conf"
	"push-fanout-service/controller/respond"
	"push-fanout-service/tool"
)

// Signed requests must carry a timestamp within this window.
const maxClockSkew = 5 * time.Minute

// AuthSignMiddleware authenticates admin requests with secp256k1
// signature headers. The client signs "<method>:<timestamp>" with the
// admin key and sends X-Timestamp, X-Signature and X-Public-Key.
func AuthSignMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := tool.MakeTimestamp()

		timestamp := c.GetHeader("X-Timestamp")
		signature := c.GetHeader("X-Signature")
		publicKey := c.GetHeader("X-Public-Key")

		if timestamp == "" || signature == "" || publicKey == "" {
			c.JSONP(http.StatusUnauthorized, respond.RespErr(
				respond.NewAuthError("missing signature headers"),
				tool.MakeTimestamp()-t, respond.HttpsCodeError))
			c.Abort()
			return
		}

		if publicKey != conf.AdminPublicKey {
			c.JSONP(http.StatusUnauthorized, respond.RespErr(
				respond.NewAuthError("unknown public key"),
				tool.MakeTimestamp()-t, respond.HttpsCodeError))
			c.Abort()
			return
		}

		ts, err := strconv.ParseInt(timestamp, 10, 64)
		if err != nil {
			c.JSONP(http.StatusUnauthorized, respond.RespErr(
				respond.NewAuthError("bad timestamp"),
				tool.MakeTimestamp()-t, respond.HttpsCodeError))
			c.Abort()
			return
		}
		skew := time.Duration(tool.MakeTimestamp()-ts) * time.Millisecond
		if skew < -maxClockSkew || skew > maxClockSkew {
			c.JSONP(http.StatusUnauthorized, respond.RespErr(
				respond.NewAuthError("timestamp out of window"),
				tool.MakeTimestamp()-t, respond.HttpsCodeError))
			c.Abort()
			return
		}

		message := fmt.Sprintf("%s:%s", c.Request.Method, timestamp)
		verified, err := tool.VerifySign(message, signature, publicKey)
		if err != nil || !verified {
			c.JSONP(http.StatusUnauthorized, respond.RespErr(
				respond.NewAuthError("signature verification failed"),
				tool.MakeTimestamp()-t, respond.HttpsCodeError))
			c.Abort()
			return
		}

		c.Next()
	}
}
