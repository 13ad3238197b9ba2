// Package motivation serves the static quote list behind the
// "Get motivation" menu action.
package motivation

import (
	"math/rand"
	"sync"
	"time"
)

var quotes = []string{
	"Discipline is choosing between what you want now and what you want most.",
	"You don't have to be extreme, just consistent.",
	"Small steps every day add up to big results.",
	"The hardest part is showing up. You just did.",
	"Motivation gets you going, habit keeps you growing.",
	"A year from now you will wish you had started today.",
	"Success is the sum of small efforts repeated day in and day out.",
	"Don't count the days. Make the days count.",
	"Every action you take is a vote for the person you want to become.",
	"Fall seven times, stand up eight.",
	"It never gets easier. You get stronger.",
	"The streak you keep today is the freedom you earn tomorrow.",
}

var (
	pickRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	pickMu   sync.Mutex
)

// Pick returns one quote chosen uniformly at random.
func Pick() string {
	pickMu.Lock()
	defer pickMu.Unlock()
	return quotes[pickRand.Intn(len(quotes))]
}
