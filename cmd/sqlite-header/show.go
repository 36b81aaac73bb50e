package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/wilhasse/go-sqlitehdr/format"
	"github.com/wilhasse/go-sqlitehdr/header"
)

// ShowCmd decodes the header once.
type ShowCmd struct {
	Path   string `arg:"" help:"Path to SQLite database file" type:"existingfile"`
	Output string `short:"o" default:"text" enum:"text,json,yaml" help:"Output format (text, json, yaml)"`
}

func (c *ShowCmd) Run(rc *runContext) error {
	h, findings, err := rc.readHeader(c.Path)
	if err != nil {
		return err
	}
	return render(rc.out, c.Output, h, findings)
}

// headerView is the serialized form of a header and its findings.
type headerView struct {
	PageSize            int                   `json:"page_size" yaml:"page_size"`
	UsablePageSize      int                   `json:"usable_page_size" yaml:"usable_page_size"`
	WriteVersion        format.FormatVersion  `json:"write_version" yaml:"write_version"`
	ReadVersion         format.FormatVersion  `json:"read_version" yaml:"read_version"`
	ReservedBytes       uint8                 `json:"reserved_bytes" yaml:"reserved_bytes"`
	MaxPayloadFraction  uint8                 `json:"max_payload_fraction" yaml:"max_payload_fraction"`
	MinPayloadFraction  uint8                 `json:"min_payload_fraction" yaml:"min_payload_fraction"`
	LeafPayloadFraction uint8                 `json:"leaf_payload_fraction" yaml:"leaf_payload_fraction"`
	ChangeCounter       uint32                `json:"change_counter" yaml:"change_counter"`
	DatabaseSize        *uint32               `json:"database_size" yaml:"database_size"`
	DatabaseSizeValid   bool                  `json:"database_size_valid" yaml:"database_size_valid"`
	FreePageList        *format.FreePageList  `json:"free_page_list" yaml:"free_page_list"`
	SchemaCookie        uint32                `json:"schema_cookie" yaml:"schema_cookie"`
	SchemaVersion       format.SchemaVersion  `json:"schema_version" yaml:"schema_version"`
	CacheSize           uint32                `json:"cache_size" yaml:"cache_size"`
	Vacuum              *format.VacuumSetting `json:"vacuum" yaml:"vacuum"`
	TextEncoding        format.TextEncoding   `json:"text_encoding" yaml:"text_encoding"`
	UserVersion         int32                 `json:"user_version" yaml:"user_version"`
	ApplicationID       uint32                `json:"application_id" yaml:"application_id"`
	VersionValidFor     uint32                `json:"version_valid_for" yaml:"version_valid_for"`
	LibraryWriteVersion uint32                `json:"library_write_version" yaml:"library_write_version"`
	LibraryVersion      string                `json:"library_version" yaml:"library_version"`
	Findings            []string              `json:"findings" yaml:"findings"`
}

func newHeaderView(h *header.DatabaseHeader, findings header.Findings) headerView {
	v := headerView{
		PageSize:            h.PageSize.Bytes(),
		UsablePageSize:      h.UsablePageSize(),
		WriteVersion:        h.WriteVersion,
		ReadVersion:         h.ReadVersion,
		ReservedBytes:       h.ReservedBytes,
		MaxPayloadFraction:  h.MaxPayloadFraction,
		MinPayloadFraction:  h.MinPayloadFraction,
		LeafPayloadFraction: h.LeafPayloadFraction,
		ChangeCounter:       h.ChangeCounter,
		DatabaseSize:        h.DatabaseSize,
		DatabaseSizeValid:   h.DatabaseSizeValid(),
		FreePageList:        h.FreePageList,
		SchemaCookie:        h.SchemaCookie,
		SchemaVersion:       h.SchemaVersion,
		CacheSize:           h.CacheSize,
		Vacuum:              h.Vacuum,
		TextEncoding:        h.TextEncoding,
		UserVersion:         h.UserVersion,
		ApplicationID:       h.ApplicationID,
		VersionValidFor:     h.VersionValidFor,
		LibraryWriteVersion: h.LibraryWriteVersion,
		LibraryVersion:      h.LibraryVersion(),
		Findings:            []string{},
	}
	for _, f := range findings {
		v.Findings = append(v.Findings, f.Error())
	}
	return v
}

func render(w io.Writer, output string, h *header.DatabaseHeader, findings header.Findings) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newHeaderView(h, findings))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newHeaderView(h, findings)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, h, findings)
	}
}

func renderText(w io.Writer, h *header.DatabaseHeader, findings header.Findings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "=== SQLite Header ===\n")
	fmt.Fprintf(tw, "  Page Size:\t%d (%s)\n", h.PageSize, humanize.IBytes(uint64(h.PageSize)))
	fmt.Fprintf(tw, "  Usable Size:\t%d\n", h.UsablePageSize())
	fmt.Fprintf(tw, "  Write Version:\t%s\n", h.WriteVersion)
	fmt.Fprintf(tw, "  Read Version:\t%s\n", h.ReadVersion)
	fmt.Fprintf(tw, "  Reserved Bytes:\t%d\n", h.ReservedBytes)
	fmt.Fprintf(tw, "  Payload Fractions:\t%d/%d/%d\n", h.MaxPayloadFraction, h.MinPayloadFraction, h.LeafPayloadFraction)
	fmt.Fprintf(tw, "  Change Counter:\t%d\n", h.ChangeCounter)
	if h.DatabaseSize != nil {
		sz := uint64(*h.DatabaseSize) * uint64(h.PageSize)
		fmt.Fprintf(tw, "  Database Size:\t%d pages (%s, valid=%v)\n", *h.DatabaseSize, humanize.IBytes(sz), h.DatabaseSizeValid())
	} else {
		fmt.Fprintf(tw, "  Database Size:\tNULL\n")
	}
	if h.FreePageList != nil {
		fmt.Fprintf(tw, "  Freelist:\tstart=%d length=%d\n", h.FreePageList.StartPage, h.FreePageList.Length)
	} else {
		fmt.Fprintf(tw, "  Freelist:\tempty\n")
	}
	fmt.Fprintf(tw, "  Schema Cookie:\t%d\n", h.SchemaCookie)
	fmt.Fprintf(tw, "  Schema Format:\t%s\n", h.SchemaVersion)
	fmt.Fprintf(tw, "  Cache Size:\t%d pages\n", h.CacheSize)
	if h.Vacuum != nil {
		fmt.Fprintf(tw, "  Auto Vacuum:\t%s (largest root page %d)\n", h.Vacuum.Mode, h.Vacuum.LargestRootPage)
	} else {
		fmt.Fprintf(tw, "  Auto Vacuum:\tnone\n")
	}
	fmt.Fprintf(tw, "  Text Encoding:\t%s\n", h.TextEncoding)
	fmt.Fprintf(tw, "  User Version:\t%d\n", h.UserVersion)
	fmt.Fprintf(tw, "  Application ID:\t0x%08x\n", h.ApplicationID)
	fmt.Fprintf(tw, "  Version Valid For:\t%d\n", h.VersionValidFor)
	fmt.Fprintf(tw, "  SQLite Version:\t%s (%d)\n", h.LibraryVersion(), h.LibraryWriteVersion)
	for _, f := range findings {
		fmt.Fprintf(tw, "  Warning:\t%s\n", f)
	}
	return tw.Flush()
}
