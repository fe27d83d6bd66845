// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"path"
	"reflect"
)

// typeURLPrefix is the authority component of every Courier type URL.
// The daemon treats the whole URL as an opaque tag; the prefix only
// namespaces Courier-generated tags away from other producers.
const typeURLPrefix = "type.courier.dev"

// TypeURL computes the type tag for a payload value, in the form
// "type.courier.dev/<package>.<Type>". Pointers are followed to their
// element type. Unnamed types (maps, slices, primitives used directly
// as payloads) have no stable name and yield an empty string, which
// callers record as an absent tag.
func TypeURL(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return ""
	}
	qualified := t.Name()
	if t.PkgPath() != "" {
		qualified = path.Base(t.PkgPath()) + "." + t.Name()
	}
	return typeURLPrefix + "/" + qualified
}
