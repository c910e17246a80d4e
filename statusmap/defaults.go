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

package statusmap

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// defaultGRPC defines the built-in gRPC codes for well-known HTTP statuses
// carried by problem details. Statuses without an entry resolve through their
// class (see defaultClass).
var defaultGRPC = map[int]codes.Code{
	// 4xx: client, protocol and resource issues.
	http.StatusBadRequest:                   codes.InvalidArgument,
	http.StatusUnauthorized:                 codes.Unauthenticated,
	http.StatusPaymentRequired:              codes.FailedPrecondition, // e.g. out of credit
	http.StatusForbidden:                    codes.PermissionDenied,
	http.StatusNotFound:                     codes.NotFound,
	http.StatusMethodNotAllowed:             codes.Unimplemented,
	http.StatusRequestTimeout:               codes.DeadlineExceeded,
	http.StatusConflict:                     codes.Aborted,
	http.StatusGone:                         codes.NotFound, // gRPC has no 410
	http.StatusPreconditionFailed:           codes.FailedPrecondition,
	http.StatusRequestEntityTooLarge:        codes.ResourceExhausted,
	http.StatusUnsupportedMediaType:         codes.InvalidArgument,
	http.StatusRequestedRangeNotSatisfiable: codes.OutOfRange,
	http.StatusUnprocessableEntity:          codes.InvalidArgument,
	http.StatusTooEarly:                     codes.FailedPrecondition,
	http.StatusTooManyRequests:              codes.ResourceExhausted,
	499:                                     codes.Canceled, // nginx "client closed request"

	// 5xx: server, dependency and transient issues.
	http.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusBadGateway:          codes.Unavailable,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
}

// defaultClass is used for HTTP statuses without an exact entry, keyed by
// status class (4 for 4xx, 5 for 5xx).
var defaultClass = map[int]codes.Code{
	4: codes.FailedPrecondition,
	5: codes.Internal,
}

// defaultHTTP defines the built-in HTTP statuses for gRPC codes, following
// the mapping used by common gRPC/HTTP gateways.
var defaultHTTP = map[codes.Code]int{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           499,
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
	codes.Unauthenticated:    http.StatusUnauthorized,
}
