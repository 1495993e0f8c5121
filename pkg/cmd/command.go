// Package cmd is a transport-agnostic command core: a command has a name,
// a description, and Run(ctx, invocation). Registration and dispatch live in
// adapters (here, the Discord layer).
package cmd

import "context"

// Invocation is the minimal input a runner passes to a command. Data holds
// the adapter's own context (for Discord, a typed interaction context).
type Invocation struct {
	Args []string
	Data interface{}
}

// Command is the universal contract. Permissions, slash definitions and
// other transport concerns stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
