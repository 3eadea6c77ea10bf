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

// The ClassLoaderReference command set (14): a single command, VisibleClasses.
var cmdClassLoaderReferenceVisibleClasses = newCommand[ClassLoaderID, []TaggedReferenceTypeID](cmdSetClassLoaderReference, 1)

// GetVisibleClasses returns every reference type loader was asked to load,
// including types it delegated to another loader.
func (c *Connection) GetVisibleClasses(ctx context.Context, loader ClassLoaderID) ([]TaggedReferenceTypeID, error) {
	return Call(ctx, c, cmdClassLoaderReferenceVisibleClasses, loader)
}
