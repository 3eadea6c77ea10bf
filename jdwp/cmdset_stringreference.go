// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jdwp

import "context"

// The StringReference command set (10): a single command, Value.
var cmdStringReferenceValue = newCommand[StringID, string](cmdSetStringReference, 1)

// GetStringValue returns the UTF-8 text of the java.lang.String object s.
func (c *Connection) GetStringValue(ctx context.Context, s StringID) (string, error) {
	return Call(ctx, c, cmdStringReferenceValue, s)
}
