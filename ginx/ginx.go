/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package ginx

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/builder"
	"dirpx.dev/dproblem/httpx"
)

// Middleware renders the last error recorded with c.Error as a problem
// details response once the handler chain returns, unless the handler
// already wrote a body. A status set with c.Status is passed to the engine
// as the external status of the error.
//
// Handlers should record errors with Abort (or c.Error followed by return)
// rather than c.AbortWithError, which sends the headers before the
// middleware can set the problem media type.
func Middleware(e *dproblem.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || last.Err == nil || c.Writer.Written() {
			return
		}

		var opts []builder.Option
		if st := c.Writer.Status(); st != http.StatusOK {
			opts = append(opts, builder.WithStatus(st))
		}
		body, err := e.Handle(last.Err, opts...)
		if err != nil {
			return
		}
		mt, data, err := httpx.Encode(body, c.GetHeader("Accept"))
		if err != nil {
			e.Logger().Error("problem response encoding failed", zap.Error(err))
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Header("X-Content-Type-Options", "nosniff")
		c.Data(httpx.StatusOf(body), mt, data)
	}
}

// Abort records err on the context and stops the handler chain. When status
// is non-zero it becomes the external status of the error.
func Abort(c *gin.Context, status int, err error) {
	if status != 0 {
		c.Status(status)
	}
	_ = c.Error(err)
	c.Abort()
}

// FrameworkTypes returns the gin error types the registry fallback resolver
// may probe (see dproblem.FromConfig). Their package is probed after the
// standard library, so "urn:problem-type:error" still resolves to
// *exec.Error by default. It resolves to *gin.Error only when
// "github.com/gin-gonic/gin" precedes "os/exec" in the fallback namespaces.
func FrameworkTypes() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[*gin.Error](),
	}
}
