// Package prompt provides simple interactive prompts.
//
// For multi-step flows, see the wizard package.
package prompt
