/*
Package serwer is a small HTTP/1.x server framework built directly on TCP.

Each accepted connection carries exactly one request. The engine parses it,
matches it against the registered routes, runs the handler on a fixed worker
pool and writes the response before closing the connection. Requests that
match no route fall back to an optional public directory, then to 404.

Quick Start

	package main

	import (
	    "context"

	    "github.com/searchktools/serwer/app"
	    "github.com/searchktools/serwer/config"
	    "github.com/searchktools/serwer/core/http"
	)

	func main() {
	    application, err := app.New(config.New())
	    if err != nil {
	        panic(err)
	    }

	    engine := application.Engine()
	    engine.GET("/user/<id>", func(req *http.Request, res *http.Response) {
	        id, _ := req.Param("id")
	        res.Set(http.StatusOK, "user id: "+id)
	    })

	    if err := application.Run(context.Background()); err != nil {
	        panic(err)
	    }
	}

Modules

  - app: application lifecycle and logging
  - config: flags, JSON file and SERWER_* environment configuration
  - core: the engine, listener setup and runtime stats
  - core/http: request parsing, response serialization, paths, headers and cookies
  - core/codec: JSON and protobuf body codecs
  - core/router: routes and the route table
  - core/middleware: handler wrapping (request ids, CORS, rate limiting)
  - core/pools: the worker pool and response buffer pool
  - core/static: the public directory fallback
  - core/observability: per-route request metrics
*/
package serwer
