package scheduler_test

import (
	"context"
	"errors"
	"runtime"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ndinv/sql-inventory/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler[string]

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("Submit", func() {
		It("should submit work and return a future", func() {
			s = scheduler.NewScheduler[string](1)

			future := s.Submit(func(ctx context.Context) (string, error) {
				return "done", nil
			})
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[string]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
			Expect(result.Err).NotTo(HaveOccurred())
		})

		It("should deliver work errors", func() {
			s = scheduler.NewScheduler[string](1)

			future := s.Submit(func(ctx context.Context) (string, error) {
				return "", errors.New("boom")
			})

			_, err := future.Wait(context.Background())
			Expect(err).To(MatchError("boom"))
		})

		It("should recover from panicking work", func() {
			s = scheduler.NewScheduler[string](1)

			future := s.Submit(func(ctx context.Context) (string, error) {
				panic("bad build")
			})

			_, err := future.Wait(context.Background())
			Expect(err).To(MatchError(ContainSubstring("worker panicked")))

			// the worker slot is released
			v, err := s.Submit(func(ctx context.Context) (string, error) {
				return "next", nil
			}).Wait(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal("next"))
		})
	})

	Describe("Serialization", func() {
		// Given a scheduler with a single worker
		// When several work items are submitted at once
		// Then they never run concurrently and run in submission order
		It("should run work one at a time in submission order with one worker", func() {
			s = scheduler.NewScheduler[string](1)

			running := make(chan struct{}, 1)
			order := make(chan int, 5)
			var futures []*scheduler.Future[string]
			for i := range 5 {
				idx := i
				futures = append(futures, s.Submit(func(ctx context.Context) (string, error) {
					select {
					case running <- struct{}{}:
					default:
						return "", errors.New("concurrent run")
					}
					defer func() { <-running }()
					order <- idx
					time.Sleep(10 * time.Millisecond)
					return "ok", nil
				}))
			}

			for _, f := range futures {
				_, err := f.Wait(context.Background())
				Expect(err).NotTo(HaveOccurred())
			}
			close(order)

			var got []int
			for i := range order {
				got = append(got, i)
			}
			Expect(got).To(Equal([]int{0, 1, 2, 3, 4}))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler[string](1)

			cancelled := make(chan bool, 1)
			future := s.Submit(func(ctx context.Context) (string, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return "", ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when the waiting context ends", func() {
			s = scheduler.NewScheduler[string](1)

			cancelled := make(chan bool, 1)
			future := s.Submit(func(ctx context.Context) (string, error) {
				<-ctx.Done()
				cancelled <- true
				return "", ctx.Err()
			})

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			_, err := future.Wait(ctx)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler[string](1)

			cancelled := make(chan bool, 1)
			s.Submit(func(ctx context.Context) (string, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return "", ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			})
			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler[string](4)

			for i := 0; i < 200; i++ {
				s.Submit(func(ctx context.Context) (string, error) {
					<-ctx.Done()
					return "", ctx.Err()
				})
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when Submit is called after Close", func() {
			s = scheduler.NewScheduler[string](1)
			s.Close()

			future := s.Submit(func(ctx context.Context) (string, error) {
				return "done", nil
			})

			var result scheduler.Result[string]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler[string](1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			s.Submit(func(ctx context.Context) (string, error) {
				close(started)
				<-unblock
				return "done", nil
			})
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})
})
