package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/avdonin/foodorders/internal/syncer"
	"github.com/nats-io/nats.go"
)

// Publishes synthetic "order changed" hints to a user's subject, to poke a
// running app without the stub store.
func main() {
	u := flag.String("u", "user-1", "User id to publish for")
	id := flag.String("id", "", "Order id to repeat, a counter is used when empty")
	n := flag.Int("n", 10, "Number of events to publish")
	flag.Parse()
	sc, err := nats.Connect(nats.DefaultURL)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer sc.Close()
	subject := syncer.SubjectFor(*u)
	for i := 0; i < *n; i++ {
		orderID := *id
		if orderID == "" {
			orderID = strconv.Itoa(i)
		}
		data, err := json.Marshal(syncer.Event{OrderID: orderID})
		if err != nil {
			fmt.Println("Problem with json data: " + err.Error())
			return
		}
		err = sc.Publish(subject, data)
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		fmt.Printf("Published event for order '%s' to '%s'\n", orderID, subject)
		time.Sleep(time.Second)
	}
}
