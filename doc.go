// Package restream provides an HTTP(S) transport for REST API clients that
// transparently refreshes expiring bearer credentials on authorization
// failure (retrying exactly once), and transparently re-issues a call as a
// multiplexed streaming session when the server demands a protocol upgrade.
//
// The package glues the dispatcher in the client package with connection
// configuration, credential providers and the wsstream session layer. The
// primary entry point is New, which accepts an options structure that can be
// populated from CLI flags or configuration files:
//
//	cli, _ := restream.New(ctx, &restream.ClientOptions{ConfigURL: "file:///etc/restream.yaml"})
//	result, _ := cli.Do(ctx, &client.Request{Path: "/api/v1/pods", JSON: true})
//
// See the README for a more complete introduction.
package restream
