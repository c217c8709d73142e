// Package fireapi provides a client for the 24Fire REST API, which controls
// basic functions of a KVM server with a private API key.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the blocking API client; every method performs one HTTP round
//     trip and returns the decoded response
//   - AsyncClient: the non-blocking variant; every method returns a result
//     channel immediately and resolves on its own goroutine
//   - API: the operation interface implemented by both clients
//   - Errors: structured error types for response classification
//
// Both clients share the same request executor, so request construction and
// error classification are identical across the two call styles.
//
// # Usage
//
// Create a client with your private API key:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := fireapi.NewClient("your-api-key", logger,
//		fireapi.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	config, err := client.GetConfig(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(config["data"])
//
// Or use the non-blocking client when the caller should not be suspended
// during the round trip:
//
//	async, _ := fireapi.NewAsyncClient("your-api-key", logger)
//	res := <-async.GetStatus(ctx)
//	if res.Err != nil {
//		log.Fatal(res.Err)
//	}
//
// # Error Handling
//
// Responses are classified into three error kinds:
//
//   - AuthError: HTTP 401 or 403; SubscriptionRequired reports whether the
//     failure is a '24fire+' subscription-tier denial rather than a bad key
//   - RequestError: any other non-2xx status, carrying the status code and
//     the raw response body; also produced when the configured timeout
//     elapses (Timeout reports true)
//   - ClientError: transport failures (connection refused, DNS) and 2xx
//     responses whose body is not valid JSON
//
// All three support errors.As:
//
//	var authErr *fireapi.AuthError
//	if errors.As(err, &authErr) && authErr.SubscriptionRequired() {
//		// feature needs a '24fire+' subscription
//	}
//
// The client never retries and never interprets the decoded envelope; only
// the HTTP status code drives error classification.
package fireapi
