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

package adapter

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/dproblem/apis"
)

// ErrNilStruct is returned by FromStruct for a nil message.
var ErrNilStruct = errors.New("dproblem: nil struct")

// ToStruct converts a problem details body into a protobuf Struct, the
// portable form used for gRPC status details and message bus propagation.
//
// Extension values go through their JSON encoding first, so any value the
// JSON body can carry (slices, nested structs, URLs) survives the trip.
func ToStruct(b apis.Body) (*structpb.Struct, error) {
	raw, err := b.MarshalJSON()
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("dproblem: body to struct: %w", err)
	}
	return s, nil
}

// FromStruct converts a protobuf Struct back into a body. Integral numbers
// come back as int64, like bodies decoded from JSON.
func FromStruct(s *structpb.Struct) (apis.Body, error) {
	if s == nil {
		return apis.Body{}, ErrNilStruct
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return apis.Body{}, fmt.Errorf("dproblem: struct to body: %w", err)
	}
	var b apis.Body
	if err := b.UnmarshalJSON(raw); err != nil {
		return apis.Body{}, fmt.Errorf("dproblem: struct to body: %w", err)
	}
	return b, nil
}

// ToAny packs the body as a google.protobuf.Any wrapping a Struct.
func ToAny(b apis.Body) (*anypb.Any, error) {
	s, err := ToStruct(b)
	if err != nil {
		return nil, err
	}
	return anypb.New(s)
}

// FromAny unpacks a body packed by ToAny. ok is false when a does not hold
// a Struct.
func FromAny(a *anypb.Any) (b apis.Body, ok bool, err error) {
	if a == nil || !a.MessageIs(&structpb.Struct{}) {
		return apis.Body{}, false, nil
	}
	s := &structpb.Struct{}
	if err := a.UnmarshalTo(s); err != nil {
		return apis.Body{}, true, fmt.Errorf("dproblem: unpack struct: %w", err)
	}
	b, err = FromStruct(s)
	return b, true, err
}
