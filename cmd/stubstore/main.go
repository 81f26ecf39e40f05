package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/avdonin/foodorders/internal/arguments"
	"github.com/avdonin/foodorders/internal/handlers"
	"github.com/avdonin/foodorders/internal/pkg/middleware/logger"
	"github.com/avdonin/foodorders/internal/server"
	"github.com/avdonin/foodorders/internal/storage"
	"github.com/avdonin/foodorders/internal/storage/memstore"
	"github.com/avdonin/foodorders/internal/storage/postgres"
	"github.com/nats-io/nats.go"
)

func SignalWorker(done chan struct{}, w *sync.WaitGroup) {
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigint
	fmt.Printf("\nSignal: %v\n", sig)
	done <- struct{}{}
	w.Done()
}

func main() {
	done := make(chan struct{})
	var w sync.WaitGroup
	w.Add(1)
	go SignalWorker(done, &w)
	err := arguments.ParseArgs()
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	log, err := logger.GetLogger()
	if err != nil {
		fmt.Println("Log creation problem " + err.Error())
		return
	}

	var store storage.OrderStore
	if arguments.PostgresDSN != "" {
		worker, err := postgres.NewSqlWorker(arguments.PostgresDSN)
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		err = worker.CreateDefaultTables()
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		store = worker
	} else {
		store = memstore.NewMemStore()
	}

	sc, err := nats.Connect(arguments.NatsURL)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	pub := handlers.NatsPublisher{Conn: sc}

	h := handlers.NewHandlers(store, &pub, log, arguments.UserID, arguments.AuthToken)
	srv, err := server.NewServer(h, *log)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	w.Add(1)
	go srv.RunServer(done, &w)
	w.Wait()
	sc.Close()
	fmt.Println("Stub store was closed!")
}
