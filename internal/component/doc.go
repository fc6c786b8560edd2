// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package component holds ExampleComponent, the predicate evaluated by the
// check command.
package component
