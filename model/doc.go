// Package model defines the provider‑agnostic abstractions for the language
// model collaborator driving planning and summarization.
//
// Core goals:
//   - Unify streaming + non‑streaming generation behind a single interface
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so higher layers (planner, summarizer) remain decoupled from vendor
// SDKs.
package model
