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

// The ThreadGroupReference command set (12): Name, Parent and Children.
var (
	cmdThreadGroupReferenceName     = newCommand[ThreadGroupID, string](cmdSetThreadGroupReference, 1)
	cmdThreadGroupReferenceParent   = newCommand[ThreadGroupID, ThreadGroupID](cmdSetThreadGroupReference, 2)
	cmdThreadGroupReferenceChildren = newCommand[ThreadGroupID, ThreadGroupChildren](cmdSetThreadGroupReference, 3)
)

// ThreadGroupChildren lists the direct children of a thread group.
type ThreadGroupChildren struct {
	ChildThreads []ThreadID
	ChildGroups  []ThreadGroupID
}

// GetThreadGroupName returns the thread group's name.
func (c *Connection) GetThreadGroupName(ctx context.Context, group ThreadGroupID) (string, error) {
	return Call(ctx, c, cmdThreadGroupReferenceName, group)
}

// GetThreadGroupParent returns the parent of group, or zero for a top-level group.
func (c *Connection) GetThreadGroupParent(ctx context.Context, group ThreadGroupID) (ThreadGroupID, error) {
	return Call(ctx, c, cmdThreadGroupReferenceParent, group)
}

// GetThreadGroupChildren returns the direct child threads and thread groups of group.
func (c *Connection) GetThreadGroupChildren(ctx context.Context, group ThreadGroupID) (ThreadGroupChildren, error) {
	return Call(ctx, c, cmdThreadGroupReferenceChildren, group)
}
