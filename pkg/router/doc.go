// Package router serves drafter pages over HTTP.
//
// A Router maps paths to page functions. Each request's form values are
// decoded with codec.RemapForm and handed to the page function together
// with the shared application state; the page function returns the
// content to show and, optionally, a new state.
//
//	r := router.New(cfg, &Cart{})
//	r.Handle("index", func(req *router.Request) (router.Page, error) {
//	    cart := req.State.(*Cart)
//	    buy, err := content.NewButton("Buy", "checkout", []content.Pair{{Name: "sku", Value: "A1"}})
//	    if err != nil {
//	        return router.Page{}, err
//	    }
//	    return router.Page{Content: []any{content.NewHeader("Shop", 1), buy}}, nil
//	})
//	http.ListenAndServe(cfg.Address(), r)
//
// Before a page is written its links are checked against the registered
// routes. A page with a broken link is answered with 500 and never
// reaches the client.
//
// Routes is a fixed route set for verifying content without a server.
package router
