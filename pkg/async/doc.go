// Package async runs functions in their own goroutines and collects their results
// as futures.
//
// Async starts the computation and returns a Future; Await blocks until it is done:
//
//	future := async.Async(ctx, userID, fetchUser)
//	user, err := future.Await()
//
// Settle waits for every future, even after a failure, and reports each outcome
// in the order the futures were given, not the order they finished in:
//
//	for i, o := range async.Settle(futures...) {
//		if o.Err != nil {
//			log.Printf("future %d failed: %v", i, o.Err)
//		}
//	}
//
// A context that is already done when Async is called short-circuits the
// computation: the function is not invoked and the future holds ctx.Err().
package async
