/*
Package resilience provides a circuit breaker for calls to a remote numcore
server.

The breaker moves between three states:

	Closed --[ShouldTrip]-> Open --[Cooldown]-> Half-Open --[MaxProbes successes]-> Closed
	                                               |
	                                          [failure]
	                                               v
	                                              Open

Usage:

	breaker := resilience.New("numcore-api", resilience.Settings{
		Cooldown: 10 * time.Second,
		IsFailure: func(err error) bool {
			var se *StatusError
			return err != nil && !(errors.As(err, &se) && se.Code < 500)
		},
	})

	err := breaker.Do(ctx, func(ctx context.Context) error {
		return call(ctx)
	})
*/
package resilience
