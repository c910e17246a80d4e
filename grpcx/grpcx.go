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

package grpcx

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/adapter"
	"dirpx.dev/dproblem/apis"
)

// ToStatus converts err into a gRPC status carrying the problem details
// body as a google.protobuf.Struct detail. The code comes from the engine's
// status mapper; the message is the body's detail, or its title.
//
// Errors that already carry a gRPC status are returned unchanged.
func ToStatus(e *dproblem.Engine, err error) *gstatus.Status {
	if err == nil {
		return nil
	}
	if st, ok := gstatus.FromError(err); ok {
		return st
	}
	body, berr := e.Handle(err)
	if berr != nil {
		return gstatus.New(codes.Unknown, err.Error())
	}

	msg := body.Detail
	if msg == "" {
		msg = body.Title
	}
	base := gstatus.New(e.StatusMapper().GRPCCode(body.Status), msg)

	// Try to attach the body as details. If it fails, return base.
	s, serr := adapter.ToStruct(body)
	if serr != nil {
		e.Logger().Warn("problem body not attached to status", zap.Error(serr))
		return base
	}
	with, werr := base.WithDetails(s)
	if werr != nil {
		e.Logger().Warn("problem body not attached to status", zap.Error(werr))
		return base
	}
	return with
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// handler errors into gRPC statuses with the problem details body attached.
func UnaryServerInterceptor(e *dproblem.Engine) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, ToStatus(e, err).Err()
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(e *dproblem.Engine) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return ToStatus(e, err).Err()
	}
}

// UnaryClientInterceptor returns a gRPC UnaryClientInterceptor that turns
// statuses carrying a problem details body back into typed errors. Statuses
// without a body are returned as-is.
func UnaryClientInterceptor(e *dproblem.Engine) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}
		return FromStatus(e, err)
	}
}

// FromStatus reconstructs the typed error described by the problem details
// body of a gRPC error. err is returned unchanged when it carries no body.
func FromStatus(e *dproblem.Engine, err error) error {
	body, ok := ExtractBody(err)
	if !ok {
		return err
	}
	problem, rerr := e.Reconstruct(body)
	if rerr != nil {
		e.Logger().Debug("problem partially reconstructed from status",
			zap.String("type", body.Type),
			zap.Error(rerr),
		)
	}
	return problem
}

// ExtractBody pulls the problem details body out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractBody(err error) (apis.Body, bool) {
	if err == nil {
		return apis.Body{}, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return apis.Body{}, false
	}
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		if body, err := adapter.FromStruct(s); err == nil && body.Type != "" {
			return body, true
		}
	}
	return apis.Body{}, false
}
