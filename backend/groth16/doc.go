// Copyright 2020 ConsenSys AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package groth16 ties together the field/curve/poly/domain/r1cs/qap
// layers into the three public operations of the protocol: Setup, Prove
// and Verify (spec.md §4.5-4.7), plus serialization of their artifacts.
//
// # See also
//
// https://eprint.iacr.org/2016/260.pdf
package groth16
