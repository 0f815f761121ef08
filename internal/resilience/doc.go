// Package resilience groups the fault tolerance helpers around the document store.
//
//   - circuitbreaker wraps every store call made while serving requests and
//     fails fast while the store is unavailable.
//   - retry re-attempts the initial connection at startup with exponential
//     backoff and jitter.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.StoreConfig(mongo.ErrNoDocuments))
//	doc, err := circuitbreaker.Call(cb, func() (*entity.Country, error) {
//	    return repo.Get(ctx, id)
//	})
//
//	err := retry.WithBackoff(ctx, retry.ConnectConfig(), func() error {
//	    store, err = db.Open(ctx, cfg.Mongo)
//	    return err
//	})
package resilience
