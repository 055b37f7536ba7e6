// Package config resolves prm settings from a per-user config file and
// per-invocation overrides.
//
// The Store lazily loads the first existing ~/.config/prm.{json,yml,yaml,toml}
// file, decodes it through an extension-keyed decoder registry, and layers CLI
// flag overrides on top. Path-typed keys are validated (no trailing
// separator) and home-expanded regardless of which layer supplied them.
//
// Command handlers must call ClearOverrides before applying their own flags so
// values never leak from one invocation into the next.
package config
