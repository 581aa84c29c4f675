package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	router "backend/internal/http"
	"backend/internal/http/handlers"
	"backend/internal/locks"
	"backend/internal/notify"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := intdb.EnsureSchema(intconfig.DB); err != nil {
		log.Fatalf("Gagal menyiapkan schema: %v", err)
	}

	// Lock backend: Redis when configured, in-process otherwise.
	var locker locks.Locker = locks.NewKeyedMutex()
	if client := intconfig.ConnectRedis(env); client != nil {
		locker = locks.NewRedisLocker(client, 10*time.Second)
		defer client.Close()
	}

	dispatcher := notify.Dispatcher{}
	if env.AMQPURL != "" {
		publisher := notify.NewAMQPPublisher(env.AMQPURL)
		defer publisher.Close()
		dispatcher.Queue = publisher
	}

	handlers.Configure(handlers.Deps{
		Locker: locker,
		Notify: dispatcher,
	})

	// Router (Gin engine)
	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
