package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

func hammer(url string, token string, ids int, total int) {
	for i := 0; i < total; i++ {
		go func() {
			cl := resty.New()
			id := strconv.Itoa(rand.Intn(ids))
			resp, err := cl.R().SetAuthToken(token).Get(url + "/orders/" + id)
			if err != nil {
				fmt.Printf("Error is: %s\n", err.Error())
			} else {
				fmt.Printf("Order '%s' status is: %d\n", id, resp.StatusCode())
			}
		}()
	}
}

func main() {
	url := flag.String("a", "http://localhost:8000", "Base url of the stub store")
	token := flag.String("t", "loadtest", "Bearer token to send")
	n := flag.Int("n", 10000, "Number of requests")
	flag.Parse()
	go hammer(*url, *token, 6, *n)
	time.Sleep(time.Second * 5)
}
