// Package factory instantiates pluggable components from configuration.
// A component is described by a ModuleConfig: a registered type name and a
// free-form conf map that the factory decodes into its own settings struct
// with Decode.
//
//	reg := factory.NewRegistry[report.Reporter]()
//	_ = reg.Register("csv", func(conf map[string]any) (report.Reporter, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return newCSV(c.Path), nil
//	})
//	r, err := reg.Create(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": "out.csv"}})
package factory
