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


// Package relay implements the gateway that forwards search requests from
// the public mount point to the search backend through a fixed proxy hop.
//
// Every request under the mount point is forwarded with its method, query
// string and a constrained header set. The bare mount point redirects to the
// landing page. Requests whose URL contains a capture marker (qc_redir or
// tbd) have their backend response inspected: a 302 becomes a client
// redirect with no body, any other status is logged and echoed. All other
// responses are echoed byte for byte with the backend content type.
//
// The relay never retries. A transport failure answers 502 with the error
// text in the body.
//
// # Usage
//
//	cfg := relay.NewConfig(relay.WithBackendURL("http://s.s"))
//	rl, err := relay.NewRelay(cfg, relay.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	http.ListenAndServe(":8080", relay.NewRouter(rl))
package relay
