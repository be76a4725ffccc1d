package middleware

import (
	"strconv"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/clover/internal/appcontext"
)

// Logger logs one line per request. It reads the request values seeded by
// Context(), so it must sit after Context() in the middleware chain.
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()
			res := c.Response()
			start := time.Now()
			if err = next(c); err != nil {
				c.Error(err)
			}

			stop := time.Now()

			ctx := c.Request().Context()
			id := appcontext.GetRequestID(ctx)
			if id == "" {
				id = uuid.New().String()
			}

			logger.WithContext(ctx).WithFields(map[string]interface{}{
				"request_id":    id,
				"method":        appcontext.GetMethod(ctx),
				"uri":           req.RequestURI,
				"status":        res.Status,
				"route":         appcontext.GetRoute(ctx),
				"remote_ip":     appcontext.GetRemoteIP(ctx),
				"referer":       appcontext.GetReferer(ctx),
				"host":          req.Host,
				"user_agent":    req.UserAgent(),
				"response_time": stop.Sub(start),
				"request_size":  req.Header.Get(echo.HeaderContentLength),
				"response_size": strconv.FormatInt(res.Size, 10),
			}).Info("Request")

			return nil
		}
	}
}
