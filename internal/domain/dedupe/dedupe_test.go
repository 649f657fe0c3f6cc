package dedupe_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	dedupe "github.com/okian/talentscope/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should have default configuration", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When creating a deduper with custom options", func() {
			d := dedupe.NewInMemoryDeduper(
				dedupe.WithMaxSize(100),
			)

			Convey("Then it should have custom configuration", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				seen := d.SeenAndRecord(context.Background(), "job-1")

				Convey("Then it should return false and record the key", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the key was already seen", func() {
				// First time
				d.SeenAndRecord(context.Background(), "job-1")

				// Second time
				seen := d.SeenAndRecord(context.Background(), "job-1")

				Convey("Then it should return true", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And multiple keys are recorded", func() {
				keys := []string{"job-1", "job-2", "job-3", "job-4", "job-5"}

				for _, key := range keys {
					seen := d.SeenAndRecord(context.Background(), key)
					So(seen, ShouldBeFalse)
				}

				Convey("Then all keys should be recorded", func() {
					So(d.Size(), ShouldEqual, int64(len(keys)))

					// Check that all keys are seen
					for _, key := range keys {
						seen := d.SeenAndRecord(context.Background(), key)
						So(seen, ShouldBeTrue)
					}
				})
			})
		})

		Convey("When unrecording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key exists", func() {
				// Record the key
				d.SeenAndRecord(context.Background(), "job-1")
				So(d.Size(), ShouldEqual, 1)

				// Unrecord the key
				d.Unrecord(context.Background(), "job-1")

				Convey("Then it should be removed", func() {
					So(d.Size(), ShouldEqual, 0)

					// Should not be seen anymore
					seen := d.SeenAndRecord(context.Background(), "job-1")
					So(seen, ShouldBeFalse)
				})
			})

			Convey("And the key doesn't exist", func() {
				// Try to unrecord non-existent key
				d.Unrecord(context.Background(), "nonexistent")

				Convey("Then it should not affect the size", func() {
					So(d.Size(), ShouldEqual, 0)
				})
			})

			Convey("And multiple keys are unrecorded", func() {
				keys := []string{"job-1", "job-2", "job-3"}

				// Record all keys
				for _, key := range keys {
					d.SeenAndRecord(context.Background(), key)
				}
				So(d.Size(), ShouldEqual, int64(len(keys)))

				// Unrecord all keys
				for _, key := range keys {
					d.Unrecord(context.Background(), key)
				}

				Convey("Then all keys should be removed", func() {
					So(d.Size(), ShouldEqual, 0)

					// Check that none are seen
					for _, key := range keys {
						seen := d.SeenAndRecord(context.Background(), key)
						So(seen, ShouldBeFalse)
					}
				})
			})
		})

		Convey("When using bounded mode with eviction", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

			Convey("And the deduper is at capacity", func() {
				// Fill to capacity
				keys := []string{"job-1", "job-2", "job-3"}
				for _, key := range keys {
					seen := d.SeenAndRecord(context.Background(), key)
					So(seen, ShouldBeFalse)
				}
				So(d.Size(), ShouldEqual, 3)

				// Add one more key
				seen := d.SeenAndRecord(context.Background(), "job-4")

				Convey("Then it should evict the oldest and add the new one", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 3)

					// The oldest key should be evicted, so size should remain 3
					// when we try to add key-1 again
					originalSize := d.Size()
					seen1 := d.SeenAndRecord(context.Background(), "job-1")
					So(seen1, ShouldBeFalse)                // Should not be seen (was evicted)
					So(d.Size(), ShouldEqual, originalSize) // Size should not increase

					// The newer keys should still be seen (they were not evicted)
					// Note: Since we're calling SeenAndRecord, it will record them again
					// if they were evicted, so we need to check the size instead
					seen2 := d.SeenAndRecord(context.Background(), "job-2")
					So(seen2, ShouldBeFalse)                // Will be recorded again if evicted
					So(d.Size(), ShouldEqual, originalSize) // Size should not increase

					seen3 := d.SeenAndRecord(context.Background(), "job-3")
					So(seen3, ShouldBeFalse)                // Will be recorded again if evicted
					So(d.Size(), ShouldEqual, originalSize) // Size should not increase

					seen4 := d.SeenAndRecord(context.Background(), "job-4")
					So(seen4, ShouldBeFalse)                // Will be recorded again if evicted
					So(d.Size(), ShouldEqual, originalSize) // Size should not increase
				})
			})
		})

		Convey("When using unbounded mode", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

			Convey("And many keys are recorded", func() {
				const numKeys = 1000
				for i := 0; i < numKeys; i++ {
					key := fmt.Sprintf("job-%d", i)
					seen := d.SeenAndRecord(context.Background(), key)
					So(seen, ShouldBeFalse)
				}

				Convey("Then all keys should be recorded without eviction", func() {
					So(d.Size(), ShouldEqual, int64(numKeys))

					// Check that all keys are seen
					for i := 0; i < numKeys; i++ {
						key := fmt.Sprintf("job-%d", i)
						seen := d.SeenAndRecord(context.Background(), key)
						So(seen, ShouldBeTrue)
					}
				})
			})
		})
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given a deduper with concurrent access", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(1000))
		const numGoroutines = 10
		const keysPerGoroutine = 100

		Convey("When multiple goroutines record keys concurrently", func() {
			var wg sync.WaitGroup
			errors := make(chan error, numGoroutines)

			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func(goroutineID int) {
					defer wg.Done()
					for j := 0; j < keysPerGoroutine; j++ {
						key := fmt.Sprintf("job-%d-%d", goroutineID, j)
						// This should not panic or cause race conditions
						d.SeenAndRecord(context.Background(), key)
					}
				}(i)
			}

			wg.Wait()
			close(errors)

			Convey("Then all keys should be recorded successfully", func() {
				So(d.Size(), ShouldEqual, int64(numGoroutines*keysPerGoroutine))

				// Check for any errors
				for err := range errors {
					So(err, ShouldBeNil)
				}
			})
		})

		Convey("When multiple goroutines unrecord keys concurrently", func() {
			// First, record some keys
			const numKeys = 500
			for i := 0; i < numKeys; i++ {
				key := fmt.Sprintf("job-%d", i)
				d.SeenAndRecord(context.Background(), key)
			}

			So(d.Size(), ShouldEqual, int64(numKeys))

			// Now unrecord them concurrently
			var wg sync.WaitGroup
			for i := 0; i < numGoroutines; i++ {
				wg.Add(1)
				go func(goroutineID int) {
					defer wg.Done()
					for j := 0; j < numKeys/numGoroutines; j++ {
						key := fmt.Sprintf("job-%d", goroutineID*(numKeys/numGoroutines)+j)
						d.Unrecord(context.Background(), key)
					}
				}(i)
			}

			wg.Wait()

			Convey("Then all keys should be unrecorded successfully", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestDedupeEdgeCases(t *testing.T) {
	Convey("Given a deduper with edge cases", t, func() {
		Convey("When recording empty string", func() {
			d := dedupe.NewInMemoryDeduper()

			seen := d.SeenAndRecord(context.Background(), "")

			Convey("Then it should handle empty string", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)

				// Should be seen on second call
				seen2 := d.SeenAndRecord(context.Background(), "")
				So(seen2, ShouldBeTrue)
			})
		})

		Convey("When recording very long strings", func() {
			d := dedupe.NewInMemoryDeduper()

			longString := strings.Repeat("a", 10000)
			seen := d.SeenAndRecord(context.Background(), longString)

			Convey("Then it should handle long strings", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)

				// Should be seen on second call
				seen2 := d.SeenAndRecord(context.Background(), longString)
				So(seen2, ShouldBeTrue)
			})
		})

		Convey("When using nil context", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should not panic", func() {
				So(func() { d.SeenAndRecord(nil, "job-1") }, ShouldNotPanic)
				So(func() { d.Unrecord(nil, "job-1") }, ShouldNotPanic)
			})
		})

		Convey("When using very small max size", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(1))

			Convey("And adding multiple keys", func() {
				// First key
				seen1 := d.SeenAndRecord(context.Background(), "job-1")
				So(seen1, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)

				// Second key should evict the first
				seen2 := d.SeenAndRecord(context.Background(), "job-2")
				So(seen2, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)

				// First key should not be seen (was evicted), so size should remain 1
				// when we try to add key-1 again
				originalSize := d.Size()
				seen1Again := d.SeenAndRecord(context.Background(), "job-1")
				So(seen1Again, ShouldBeFalse)
				So(d.Size(), ShouldEqual, originalSize) // Size should not increase

				// Second key should still be seen
				// Note: Since we're calling SeenAndRecord, it will record it again
				// if it was evicted, so we need to check the size instead
				seen2Again := d.SeenAndRecord(context.Background(), "job-2")
				So(seen2Again, ShouldBeFalse)           // Will be recorded again if evicted
				So(d.Size(), ShouldEqual, originalSize) // Size should not increase
			})
		})

		Convey("When using negative max size", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(-1))

			Convey("Then it should be unbounded", func() {
				const numKeys = 1000
				for i := 0; i < numKeys; i++ {
					key := fmt.Sprintf("job-%d", i)
					seen := d.SeenAndRecord(context.Background(), key)
					So(seen, ShouldBeFalse)
				}

				So(d.Size(), ShouldEqual, int64(numKeys))
			})
		})
	})
}

func TestDedupeOptions(t *testing.T) {
	Convey("Given dedupe options", t, func() {
		Convey("When using WithMaxSize", func() {
			Convey("Then it should set the max size", func() {
				d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(500))
				So(d, ShouldNotBeNil)
			})

			Convey("And when max size is zero", func() {
				d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
				So(d, ShouldNotBeNil)
			})

			Convey("And when max size is negative", func() {
				d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(-100))
				So(d, ShouldNotBeNil)
			})
		})

			})
}

func TestKey(t *testing.T) {
	Convey("Given job key derivation", t, func() {
		a := dedupe.Key("sessions", "child-1", []byte(`{"score":1}`))

		Convey("Then equal inputs give equal keys", func() {
			So(dedupe.Key("sessions", "child-1", []byte(`{"score":1}`)), ShouldEqual, a)
			So(a, ShouldStartWith, "sessions:child-1:")
		})

		Convey("Then any differing part changes the key", func() {
			So(dedupe.Key("responses", "child-1", []byte(`{"score":1}`)), ShouldNotEqual, a)
			So(dedupe.Key("sessions", "child-2", []byte(`{"score":1}`)), ShouldNotEqual, a)
			So(dedupe.Key("sessions", "child-1", []byte(`{"score":2}`)), ShouldNotEqual, a)
		})

		Convey("Then part boundaries are not ambiguous", func() {
			So(dedupe.Key("ab", "c", nil), ShouldNotEqual, dedupe.Key("a", "bc", nil))
		})
	})
}
