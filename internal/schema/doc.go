// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package schema is the schema engine behind schematree. It parses schema
// modules written in an HCL-based hierarchical modeling language, registers
// them in a shared validation Context, resolves references within and across
// modules, and prunes validated modules down to what a renderer needs.
//
// # Core Concepts
//
//   - Context: the single, mutable accumulator of a run. It owns every loaded
//     module and every diagnostic produced while loading and resolving them.
//
//   - Module: one parsed file. Schema modules contribute data nodes; annotation
//     modules only contribute metadata layered onto other modules' nodes.
//
//   - Node: a container, list, leaf, leaf-list, choice or case in a module tree.
//
// Diagnostics are never returned as Go errors. Load and Validate record them
// in the Context as hcl.Diagnostics so a caller can decide, once, whether the
// whole module set is usable.
package schema
