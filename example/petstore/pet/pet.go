// Copyright (c) 2025 Restspec Authors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package pet

import "github.com/restspec/restspec/schema"

type Pet struct {
	ID   int64  `json:"id"`
	Name string `json:"name" required:"true"`
	Tag  string `json:"tag,omitempty"`
}

// Schema is the shared shape of a Pet. Every endpoint references this
// exact value so the document renders it as the Pet component.
var Schema = schema.FromType[Pet]()
