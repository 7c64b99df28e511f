package main

import (
	"context"
	"fmt"
	"os"

	"github.com/searchktools/serwer/app"
	"github.com/searchktools/serwer/config"
	"github.com/searchktools/serwer/core/codec"
	"github.com/searchktools/serwer/core/http"
	"github.com/searchktools/serwer/core/middleware"
)

func main() {
	cfg := config.New()

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	engine := application.Engine()
	engine.Use(middleware.RequestID(), middleware.CORS(http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete))
	newTodoList().register(engine)

	engine.GET("/hello/<name>", func(req *http.Request, res *http.Response) {
		name, _ := req.Param("name")
		greeting := "Hello, " + name + "!"
		if last, ok := req.Cookie("last_name"); ok && last.Value() != name {
			greeting += " Last time you were " + last.Value() + "."
		}
		res.SetCookie(http.NewCookie("last_name", name).WithPath("/").WithMaxAge(3 * 60 * 60).WithHTTPOnly(true))
		res.SetHeader(http.HeaderContentType, "text/plain; charset=utf-8").Set(http.StatusOK, greeting)
	})

	engine.GET("/stats", func(_ *http.Request, res *http.Response) {
		if err := res.Encode(codec.JSON, engine.Stats()); err != nil {
			res.SetStatus(http.StatusInternalServerError)
		}
	})

	if err := application.Run(context.Background()); err != nil {
		application.Logger().Error("server failed", "err", err)
		os.Exit(1)
	}
}
