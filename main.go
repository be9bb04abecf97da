package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

func main() {
	cfg := mustConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatal("startup error: ", err)
	}
	defer app.close(context.Background())

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go app.sessions.run(sweepCtx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Println("helioplan API listening on :" + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
