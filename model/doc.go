// Package model defines the provider-agnostic abstraction for the remote
// language model every pipeline agent calls through.
//
// Core goals:
//   - One blocking Complete call per stage step; the pipeline is strictly
//     sequential so streaming adds nothing here
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so agents and the engine remain decoupled from vendor SDKs.
package model
