// Package capture produces ariasnap subject trees from a live browser
// page. It is the capture collaborator of the matcher core: the core never
// imports it and treats its output as an immutable snapshot.
//
// Role and name computation happens in the page via a small script; this
// package only launches the browser, navigates and decodes the script's
// output into typed AXNodes.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/ariasnap/ariasnap"
)

type Options struct {
	// Headless launches the browser without a window. On by default in the
	// CLI, off when debugging captures interactively.
	Headless bool
	// NavTimeout bounds page navigation; 30s when zero.
	NavTimeout time.Duration
	// UserAgent overrides the browser default when non-empty.
	UserAgent string
}

// Browser wraps one playwright Chromium instance with a single page.
// It is not safe for concurrent use; captures run strictly sequentially.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	opts    Options
}

// Launch starts Chromium and opens an empty page.
func Launch(opts Options) (*Browser, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	ctxOpts := playwright.BrowserNewContextOptions{}
	if opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	bctx, err := browser.NewContext(ctxOpts)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}
	return &Browser{pw: pw, browser: browser, page: page, opts: opts}, nil
}

func (b *Browser) Close() error {
	err := b.browser.Close()
	if serr := b.pw.Stop(); err == nil {
		err = serr
	}
	return err
}

// Goto navigates the page and waits for the network to settle.
func (b *Browser) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(b.opts.NavTimeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

// Tree captures the accessible tree below the first element matching
// selector, "body" when empty. The returned root is the synthetic
// container the matcher and serializer expect.
func (b *Browser) Tree(ctx context.Context, selector string) (*ariasnap.AXNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if selector == "" {
		selector = "body"
	}
	raw, err := b.page.Evaluate(axTreeScript, selector)
	if err != nil {
		return nil, fmt.Errorf("capture %q: %w", selector, err)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("capture %q: unexpected script result %T", selector, raw)
	}
	root := new(ariasnap.AXNode)
	for _, it := range items {
		n, err := decodeNode(it)
		if err != nil {
			return nil, fmt.Errorf("capture %q: %w", selector, err)
		}
		root.Children = append(root.Children, n)
	}
	return root, nil
}

// Capturer adapts Tree to the polling collaborator of the core.
func (b *Browser) Capturer(selector string) ariasnap.CaptureFunc {
	return func(ctx context.Context) (*ariasnap.AXNode, error) {
		return b.Tree(ctx, selector)
	}
}

func decodeNode(v interface{}) (*ariasnap.AXNode, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("element is %T, not an object", v)
	}
	n := &ariasnap.AXNode{}
	if n.Role, ok = m["role"].(string); !ok || n.Role == "" {
		return nil, fmt.Errorf("element without role: %v", m)
	}
	n.Name, _ = m["name"].(string)
	n.Text, _ = m["text"].(string)
	if attrs, ok := m["attrs"].(map[string]interface{}); ok && len(attrs) > 0 {
		n.Attrs = make(map[string]ariasnap.AttrValue, len(attrs))
		for k, av := range attrs {
			switch av := av.(type) {
			case bool:
				n.Attrs[k] = ariasnap.BoolAttr(av)
			case float64:
				n.Attrs[k] = ariasnap.NumAttr(av)
			case int:
				n.Attrs[k] = ariasnap.NumAttr(float64(av))
			case string:
				n.Attrs[k] = ariasnap.StringAttr(av)
			default:
				return nil, fmt.Errorf("attribute %s has value %v of type %T", k, av, av)
			}
		}
	}
	children, _ := m["children"].([]interface{})
	for _, c := range children {
		cn, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}

// axTreeScript walks the DOM below the selected element and reports every
// element that exposes a role. Role-less containers are transparent, their
// children are lifted to the parent, matching how assistive technology
// flattens generic wrappers.
const axTreeScript = `(sel) => {
	const roots = document.querySelector(sel);
	if (!roots) throw new Error('no element matches ' + sel);
	const tagRoles = {
		a: 'link', button: 'button', h1: 'heading', h2: 'heading',
		h3: 'heading', h4: 'heading', h5: 'heading', h6: 'heading',
		img: 'image', input: 'textbox', select: 'combobox',
		textarea: 'textbox', nav: 'navigation', main: 'main',
		header: 'banner', footer: 'contentinfo', ul: 'list', ol: 'list',
		li: 'listitem', table: 'table', tr: 'row', td: 'cell',
		th: 'columnheader', option: 'option', form: 'form',
		article: 'article', p: 'paragraph',
	};
	const inputRoles = {
		button: 'button', checkbox: 'checkbox', radio: 'radio',
		range: 'slider', submit: 'button', reset: 'button',
	};
	const role = (el) => {
		const explicit = el.getAttribute('role');
		if (explicit) return explicit;
		const tag = el.tagName.toLowerCase();
		if (tag === 'input') {
			return inputRoles[(el.getAttribute('type') || 'text').toLowerCase()] || 'textbox';
		}
		return tagRoles[tag] || '';
	};
	const name = (el) => {
		return el.getAttribute('aria-label')
			|| el.getAttribute('alt')
			|| (el.labels && el.labels[0] && el.labels[0].textContent.trim())
			|| (el.children.length === 0 && el.textContent.trim())
			|| el.getAttribute('title')
			|| el.textContent.trim();
	};
	const attrs = (el, r) => {
		const a = {};
		if (r === 'checkbox' || r === 'radio') {
			a.checked = el.checked !== undefined
				? !!el.checked
				: el.getAttribute('aria-checked') === 'true';
		}
		if (el.disabled || el.getAttribute('aria-disabled') === 'true') a.disabled = true;
		if (el.hasAttribute('aria-expanded')) a.expanded = el.getAttribute('aria-expanded') === 'true';
		if (el.hasAttribute('aria-pressed')) a.pressed = el.getAttribute('aria-pressed') === 'true';
		if (el.hasAttribute('aria-selected')) a.selected = el.getAttribute('aria-selected') === 'true';
		if (r === 'heading') {
			const m = el.tagName.match(/^H(\d)$/i);
			a.level = el.hasAttribute('aria-level')
				? Number(el.getAttribute('aria-level'))
				: (m ? Number(m[1]) : 2);
		}
		return a;
	};
	const hidden = (el) => {
		const style = window.getComputedStyle(el);
		return el.getAttribute('aria-hidden') === 'true'
			|| style.display === 'none' || style.visibility === 'hidden';
	};
	const walk = (el) => {
		const out = [];
		for (const c of el.children) {
			if (hidden(c)) continue;
			const r = role(c);
			if (!r || r === 'presentation' || r === 'none') {
				out.push(...walk(c));
				continue;
			}
			const kids = walk(c);
			const node = { role: r, name: name(c) || '', attrs: attrs(c, r), children: kids };
			if (kids.length === 0) {
				const text = c.textContent.trim();
				if (text && text !== node.name) node.text = text;
			}
			out.push(node);
		}
		return out;
	};
	return walk(roots);
}`
