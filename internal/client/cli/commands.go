package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vacstats/internal/client/services"
)

// guarded runs fn only when the route guard lets the protected view render.
func (a *App) guarded(fn func() error) error {
	switch Guard(a.auth.IsAuthenticated(), a.auth.IsLoading()) {
	case DecisionShowLoading:
		fmt.Fprintln(a.out, "Loading session...")
		return nil
	case DecisionRedirectLogin:
		// printed on every refused command, even when already at the login
		// view, so the user always gets feedback
		fmt.Fprintln(a.out, "Please login to continue (type 'login').")
		a.NavigateTo(services.ViewLogin)
		return nil
	default:
		return fn()
	}
}

// Dashboard opens the full-screen statistics view. It blocks until the user
// closes it; the periodic refresh stops with it.
func (a *App) Dashboard(ctx context.Context) error {
	return a.guarded(func() error {
		if err := a.runDashboard(a.config.RefreshInterval); err != nil {
			fmt.Fprintf(a.out, "Dashboard error: %s\n", err.Error())
		}
		a.NavigateTo(services.ViewHome)
		return nil
	})
}

// Stats prints a one-shot summary without entering the dashboard.
func (a *App) Stats(ctx context.Context) error {
	return a.guarded(func() error {
		s, err := a.stats.Summary(ctx)
		if err != nil {
			fmt.Fprintf(a.out, "Could not load statistics: %s\n", err.Error())
			return nil
		}

		v := s.VacationStats
		fmt.Fprintf(a.out, "Users: %d  Likes: %d  Vacations: %d (past %d, ongoing %d, future %d)\n",
			s.TotalUsers, s.TotalLikes, v.Total(), v.PastVacations, v.OngoingVacations, v.FutureVacations)

		for _, d := range s.TopDestinationsByLikes(10) {
			fmt.Fprintf(a.out, "  %-20s %d likes\n", d.Destination, d.Likes)
		}
		return nil
	})
}

// Whoami prints the logged-in user and, when the token carries one, its
// expiry.
func (a *App) Whoami(ctx context.Context) error {
	return a.guarded(func() error {
		u := a.auth.CurrentUser()
		if u == nil {
			return nil
		}
		fmt.Fprintf(a.out, "%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
		if exp := a.auth.TokenExpiry(); !exp.IsZero() {
			fmt.Fprintf(a.out, "Session valid until %s\n", exp.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	})
}

// Ping checks backend liveness; works logged out.
func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Health(ctx); err != nil {
		fmt.Fprintf(a.out, "Server unreachable: %s\n", err.Error())
		return nil
	}
	fmt.Fprintln(a.out, "Server is healthy.")
	return nil
}
