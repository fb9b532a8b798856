// Package services implements the core business logic of Scenechat.
// Services implement the driving port interfaces and depend only on
// the driven port interfaces, never on concrete adapters.
package services
