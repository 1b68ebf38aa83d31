// Package main hosts the gabraconv CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, applies flag
// overrides, and hands a validated request to internal/convert. It also
// lists the registered cleaners and exporters and scaffolds configuration
// files, so operators can assemble a chain without reading the source.
//
// Keep this package lean: conversion behaviour belongs in the internal
// packages, and commands here only translate flags and render results.
package main
