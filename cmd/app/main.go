package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avdonin/foodorders/internal/arguments"
	"github.com/avdonin/foodorders/internal/client"
	"github.com/avdonin/foodorders/internal/navigation"
	"github.com/avdonin/foodorders/internal/pkg/middleware/logger"
	"github.com/avdonin/foodorders/internal/storage/cache"
	"github.com/avdonin/foodorders/internal/storage/state"
	"github.com/avdonin/foodorders/internal/syncer"
)

func main() {
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
	cache.InitCache(arguments.CacheSize, arguments.CacheTimeLimitSecs, log)

	ch, err := syncer.NewNatsChannel(arguments.NatsURL, log)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	timeout := time.Second * time.Duration(arguments.FetchTimeoutSecs)
	cl := client.NewOrderClient(arguments.APIURL, timeout, log)
	st := state.NewState()
	nav := navigation.LogNavigator{Log: log}
	s := syncer.NewSynchronizer(st, cl, ch, &nav, timeout, log)
	s.SetCheckout(cl.CreateOrder)
	s.OnRefresh(func() {
		log.Infof("Aggregate refresh, %d active orders left\n", st.Len())
	})
	err = s.Subscribe(arguments.UserID, arguments.AuthToken)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigint
	fmt.Printf("\nSignal: %v\n", sig)
	s.Unsubscribe()
	ch.Close()
	fmt.Println("Subscription was closed!")
}
