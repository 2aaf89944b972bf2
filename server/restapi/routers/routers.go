// Copyright 2025 Google LLC
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

// package routers defines the HTTP routes for the analysis REST API.
package routers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	statuserrors "github.com/contractlens/contractlens/server/restapi/errors"
)

// HandlerFunc is an HTTP handler that reports failures as errors. A returned
// StatusError selects the response status; any other error maps to 500.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// A Route defines the parameters for an api endpoint
type Route struct {
	Name        string
	Methods     []string
	Pattern     string
	HandlerFunc HandlerFunc
}

// Routes is a list of defined api endpoints
type Routes []Route

// Router defines the required methods for retrieving api routes
type Router interface {
	Routes() Routes
}

func handleError(inner HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := inner(w, r)
		if err == nil {
			return
		}

		var statusErr statuserrors.StatusError
		code := http.StatusInternalServerError
		if errors.As(err, &statusErr) {
			code = statusErr.Status()
		}
		log.Printf("%s %s failed: %v", r.Method, r.RequestURI, err)
		http.Error(w, err.Error(), code)
	})
}

// NewRouter creates a new router for any number of api routers
func NewRouter(routers ...Router) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, api := range routers {
		for _, route := range api.Routes() {
			router.
				Methods(route.Methods...).
				Path(route.Pattern).
				Name(route.Name).
				Handler(handleError(route.HandlerFunc))
		}
	}
	return router
}
