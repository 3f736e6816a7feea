// Copyright 2025 Poiesic Systems
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


package transport

import "errors"

var (
	// ErrCompletionRequired is returned when Fetch is called without a callback.
	ErrCompletionRequired = errors.New("completion callback required")

	// ErrUnexpectedStatus indicates the backend answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMalformedPayload indicates the body is neither JSON nor a callback wrapper.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrTokenMismatch indicates the callback wrapper names another request.
	ErrTokenMismatch = errors.New("correlation token mismatch")

	// ErrPayloadTooLarge indicates the body exceeded the configured limit.
	ErrPayloadTooLarge = errors.New("payload too large")
)
