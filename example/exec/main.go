// Command exec demonstrates a call that the server upgrades to a streaming
// session: it runs a command in a pod and prints the multiplexed output.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/viant/restream"
	"github.com/viant/restream/client"
)

func main() {
	ctx := context.Background()
	cli, err := restream.New(ctx, &restream.ClientOptions{
		URL:   os.Getenv("RESTREAM_URL"),
		Token: os.Getenv("RESTREAM_TOKEN"),
	})
	if err != nil {
		log.Fatal(err)
	}

	query := url.Values{}
	query.Add("command", "ls")
	query.Add("command", "-l")
	query.Add("stdout", "true")
	query.Add("stderr", "true")

	result, err := cli.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/namespaces/default/pods/web/exec",
		Query:  query,
	})
	if err != nil {
		log.Fatal(err)
	}
	if result.Session != nil {
		for _, message := range result.Session.Messages {
			fmt.Printf("[%v] %v", message.Channel, message.Text)
		}
		return
	}
	fmt.Printf("%s\n", result.Body)
}
