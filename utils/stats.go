package utils

import (
	"fmt"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ExecTime             time.Duration // time spent inside the stepper only
	StepTimes            []time.Duration
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Record adds one step's stepper time and resulting population
func (s *Stats) Record(population int, duration time.Duration) {
	s.TotalGenerations++
	s.ExecTime += duration
	s.StepTimes = append(s.StepTimes, duration)
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// AverageStep returns the mean stepper time per generation
func (s *Stats) AverageStep() time.Duration {
	if s.TotalGenerations == 0 {
		return 0
	}
	return s.ExecTime / time.Duration(s.TotalGenerations)
}

// AverageMillis returns the mean stepper time per generation in milliseconds
func (s *Stats) AverageMillis() float64 {
	return float64(s.AverageStep()) / float64(time.Millisecond)
}

// Throughput returns generations per second over all recorded steps
func (s *Stats) Throughput() float64 {
	if s.ExecTime <= 0 {
		return 0
	}
	return float64(s.TotalGenerations) / s.ExecTime.Seconds()
}

// StepMillis returns the recorded step times in milliseconds
func (s *Stats) StepMillis() []float64 {
	ms := make([]float64, len(s.StepTimes))
	for i, d := range s.StepTimes {
		ms[i] = float64(d) / float64(time.Millisecond)
	}
	return ms
}

func (s *Stats) String() string {
	return fmt.Sprintf("Steps: %d avg %.2f ms", s.TotalGenerations, s.AverageMillis())
}
