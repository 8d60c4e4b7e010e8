package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"dailymuse/formatter"
)

const (
	mediumSignInURL   = "https://medium.com/m/signin"
	mediumNewStoryURL = "https://medium.com/new-story"
)

// Selectors for the Medium editor and the Google login flow. These track the
// live DOM and are the part of this publisher that rots first.
const (
	selGoogleButton   = `//button[contains(text(), 'Continue with Google')]`
	selEmailInput     = `#identifierId`
	selEmailNext      = `#identifierNext`
	selPasswordInput  = `input[name="password"]`
	selPasswordNext   = `#passwordNext`
	selEditorTitle    = `//h1[@data-default-value='Title']`
	selEditorBody     = `//div[@data-default-value='Tell your story…']`
	selTagInput       = `//input[@placeholder='Add a tag...']`
	selPublishButton  = `//button[contains(text(), 'Publish')]`
	selPublishConfirm = `//button[contains(text(), 'Publish now')]`
)

// The editor keeps the first three tags.
const maxBrowserTags = 3

// Browser publishes by driving a Chrome session through the Medium web
// editor, for accounts without an integration token. It signs in with a
// Google account and types the post in the way a person would.
type Browser struct {
	email    string
	password string
	visible  bool
	timeout  time.Duration
}

func NewBrowser(email, password string, visible bool) *Browser {
	return &Browser{email: email, password: password, visible: visible, timeout: 4 * time.Minute}
}

func (b *Browser) Destination() string { return "browser" }

func (b *Browser) Publish(ctx context.Context, post formatter.Post) (Result, error) {
	if b.email == "" || b.password == "" {
		return Result{}, errors.New("browser: google login is not configured")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !b.visible),
		chromedp.WindowSize(1280, 968),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, b.timeout)
	defer cancel()

	if err := chromedp.Run(runCtx, b.loginTasks()); err != nil {
		return Result{}, fmt.Errorf("browser: google login failed: %w", err)
	}
	log.Debug().Msg("signed in to medium")

	if err := chromedp.Run(runCtx, composeTasks(post)); err != nil {
		return Result{}, fmt.Errorf("browser: compose failed: %w", err)
	}

	// Tags are cosmetic here; a moved tag input must not sink the run.
	if err := chromedp.Run(runCtx, tagTasks(post.Tags)); err != nil {
		log.Warn().Err(err).Msg("could not add tags in the editor")
	}

	if err := chromedp.Run(runCtx, chromedp.Click(selPublishButton, chromedp.BySearch)); err != nil {
		return Result{}, fmt.Errorf("browser: publish failed: %w", err)
	}

	confirmCtx, cancelConfirm := context.WithTimeout(runCtx, 15*time.Second)
	err := chromedp.Run(confirmCtx,
		chromedp.WaitVisible(selPublishConfirm, chromedp.BySearch),
		chromedp.Click(selPublishConfirm, chromedp.BySearch),
	)
	cancelConfirm()
	if err != nil {
		log.Warn().Err(err).Msg("no publish confirmation dialog; the post may already be live")
	}

	var postURL string
	if err := chromedp.Run(runCtx,
		chromedp.Sleep(3*time.Second),
		chromedp.Location(&postURL),
	); err != nil {
		return Result{}, fmt.Errorf("browser: read post url: %w", err)
	}

	return Result{Destination: "browser", URL: postURL}, nil
}

func (b *Browser) loginTasks() chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(mediumSignInURL),
		chromedp.Click(selGoogleButton, chromedp.BySearch),
		chromedp.WaitVisible(selEmailInput, chromedp.ByQuery),
		chromedp.SendKeys(selEmailInput, b.email, chromedp.ByQuery),
		chromedp.Click(selEmailNext, chromedp.ByQuery),
		chromedp.WaitVisible(selPasswordInput, chromedp.ByQuery),
		chromedp.SendKeys(selPasswordInput, b.password, chromedp.ByQuery),
		chromedp.Click(selPasswordNext, chromedp.ByQuery),
		waitForMediumSession(),
	}
}

// waitForMediumSession polls until Google hands the session back to Medium.
func waitForMediumSession() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for {
			var loc string
			if err := chromedp.Location(&loc).Do(ctx); err != nil {
				return err
			}
			if strings.Contains(loc, "medium.com") && !strings.Contains(loc, "signin") {
				return nil
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("still on %s: %w", loc, ctx.Err())
			case <-time.After(time.Second):
			}
		}
	})
}

func composeTasks(post formatter.Post) chromedp.Tasks {
	return chromedp.Tasks{
		chromedp.Navigate(mediumNewStoryURL),
		chromedp.WaitVisible(selEditorTitle, chromedp.BySearch),
		chromedp.Click(selEditorTitle, chromedp.BySearch),
		chromedp.SendKeys(selEditorTitle, post.Title, chromedp.BySearch),
		chromedp.Click(selEditorBody, chromedp.BySearch),
		chromedp.SendKeys(selEditorBody, post.Markdown, chromedp.BySearch),
		chromedp.Sleep(2 * time.Second),
	}
}

func tagTasks(tags []string) chromedp.Tasks {
	tasks := chromedp.Tasks{
		chromedp.WaitVisible(selTagInput, chromedp.BySearch),
	}
	for _, tag := range capTags(tags, maxBrowserTags) {
		tasks = append(tasks,
			chromedp.SendKeys(selTagInput, tag+"\n", chromedp.BySearch),
			chromedp.Sleep(500*time.Millisecond),
		)
	}
	return tasks
}
