package controller

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/session"
)

// Settings runs the password change and the display preferences.
//
// Preferences are stored in the preference store of the Env, when there is
// one, and survive logouts.
type Settings struct {
	env *Env

	mu     sync.Mutex
	prefs  session.Preferences
	loaded bool
}

// Preferences returns the current preferences, loading them on first use.
func (c *Settings) Preferences() session.Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preferences()
}

func (c *Settings) preferences() session.Preferences {
	if c.loaded {
		return c.prefs
	}
	c.prefs = session.DefaultPreferences()
	if c.env.Prefs != nil {
		prefs, err := c.env.Prefs.Load()
		if err != nil {
			c.env.Logger.Warn().Err(err).Msg("cannot load preferences")
		} else {
			c.prefs = prefs
		}
	}
	c.loaded = true
	c.env.setHideAmounts(c.prefs.HideAmounts)
	return c.prefs
}

// update applies f to the preferences and stores them.
func (c *Settings) update(f func(*session.Preferences)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefs := c.preferences()
	f(&prefs)
	if c.env.Prefs != nil {
		if err := c.env.Prefs.Save(prefs); err != nil {
			c.env.Logger.Error().Err(err).Msg("cannot save preferences")
			c.env.notify(Failure, "Failed to save preferences")
			return false
		}
	}
	c.prefs = prefs
	c.env.setHideAmounts(prefs.HideAmounts)
	return true
}

// ChangePassword changes the password, once the new one is confirmed.
func (c *Settings) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) bool {
	const what = "Failed to change password"
	if oldPassword == "" || newPassword == "" {
		c.env.notify(Failure, "Please fill in all password fields")
		return false
	}
	if err := arthik.ValidatePassword(newPassword, confirm); err != nil {
		c.env.fail(what, err)
		return false
	}
	if err := c.env.API.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		c.env.fail(what, err)
		return false
	}
	c.env.notify(Success, "Password changed successfully!")
	return true
}

// SetTheme stores theme, and sends it to the backend when logged in. A
// failure of the backend is only logged: the preference is what counts.
func (c *Settings) SetTheme(ctx context.Context, theme string) bool {
	if theme != session.ThemeLight && theme != session.ThemeDark {
		c.env.notify(Failure, fmt.Sprintf("Unknown theme %q", theme))
		return false
	}
	if !c.update(func(p *session.Preferences) {
		p.Theme = theme
		p.DarkMode = theme == session.ThemeDark
	}) {
		return false
	}
	if c.env.API.Session().IsAuthenticated() {
		if err := c.env.API.SetTheme(ctx, theme); err != nil {
			c.env.Logger.Warn().Err(err).Str("theme", theme).Msg("cannot sync theme")
		}
	}
	return true
}

// SetHideAmounts hides or shows the amounts in every view.
func (c *Settings) SetHideAmounts(hide bool) bool {
	return c.update(func(p *session.Preferences) { p.HideAmounts = hide })
}

// SetDarkMode switches the dark mode of the terminal views.
func (c *Settings) SetDarkMode(on bool) bool {
	return c.update(func(p *session.Preferences) { p.DarkMode = on })
}

// SetAccent sets the accent colour.
func (c *Settings) SetAccent(accent string) bool {
	if !slices.Contains(session.Accents(), accent) {
		c.env.notify(Failure, fmt.Sprintf("Unknown accent %q", accent))
		return false
	}
	return c.update(func(p *session.Preferences) { p.Accent = accent })
}

// ResetPreferences restores the default preferences.
func (c *Settings) ResetPreferences() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.env.Prefs != nil {
		if err := c.env.Prefs.Reset(); err != nil {
			c.env.Logger.Error().Err(err).Msg("cannot reset preferences")
			c.env.notify(Failure, "Failed to reset preferences")
			return false
		}
	}
	c.prefs, c.loaded = session.DefaultPreferences(), true
	c.env.setHideAmounts(false)
	return true
}
