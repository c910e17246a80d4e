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

package registry

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"net"
	"net/url"
	"os"
	"os/exec"
	"reflect"
	"strconv"
	"time"

	"dirpx.dev/dproblem/naming"
)

// Loader finds a concrete type by its qualified name ("pkgpath.Name").
//
// Go cannot load types by name at run time, so the fallback resolver probes
// an explicit catalog of known types instead.
type Loader interface {
	Load(qualifiedName string) (reflect.Type, bool)
}

// Catalog is a Loader over a fixed set of types, keyed by qualified name.
type Catalog map[string]reflect.Type

// NewCatalog returns a catalog of the given types. Later types replace
// earlier ones with the same qualified name.
func NewCatalog(types ...reflect.Type) Catalog {
	c := make(Catalog, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		c[naming.QualifiedName(t)] = t
	}
	return c
}

// Load implements Loader.
func (c Catalog) Load(qualifiedName string) (reflect.Type, bool) {
	t, ok := c[qualifiedName]
	return t, ok
}

// StdlibNamespaces are the standard library packages probed by default, in
// order.
var StdlibNamespaces = []string{
	"io/fs",
	"os",
	"os/exec",
	"net",
	"net/url",
	"strconv",
	"encoding/json",
	"encoding/base64",
	"encoding/hex",
	"time",
}

// StdlibTypes returns the standard library error types known to the default
// catalog.
func StdlibTypes() []reflect.Type {
	return []reflect.Type{
		reflect.TypeFor[*fs.PathError](),
		reflect.TypeFor[*os.LinkError](),
		reflect.TypeFor[*os.SyscallError](),
		reflect.TypeFor[*exec.Error](),
		reflect.TypeFor[*exec.ExitError](),
		reflect.TypeFor[*net.OpError](),
		reflect.TypeFor[*net.DNSError](),
		reflect.TypeFor[*net.AddrError](),
		reflect.TypeFor[*net.ParseError](),
		reflect.TypeFor[net.UnknownNetworkError](),
		reflect.TypeFor[net.InvalidAddrError](),
		reflect.TypeFor[*url.Error](),
		reflect.TypeFor[url.EscapeError](),
		reflect.TypeFor[url.InvalidHostError](),
		reflect.TypeFor[*strconv.NumError](),
		reflect.TypeFor[*json.SyntaxError](),
		reflect.TypeFor[*json.UnmarshalTypeError](),
		reflect.TypeFor[*json.InvalidUnmarshalError](),
		reflect.TypeFor[*json.UnsupportedTypeError](),
		reflect.TypeFor[*json.UnsupportedValueError](),
		reflect.TypeFor[*json.MarshalerError](),
		reflect.TypeFor[base64.CorruptInputError](),
		reflect.TypeFor[hex.InvalidByteError](),
		reflect.TypeFor[*time.ParseError](),
	}
}
