package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// SlideText is the text content re-extracted from one rendered slide.
type SlideText struct {
	// Title is the text of the title placeholder.
	Title string

	// Bullets holds one entry per paragraph of the body placeholder.
	Bullets []string

	// Annotations holds the text of non-placeholder boxes (image notes,
	// bylines); they are not deck content.
	Annotations []string
}

// ReadDeck opens a rendered .pptx and extracts the text of every slide in
// presentation order. It understands exactly the structure the writer
// emits and exists to verify round-trips, not to read arbitrary decks.
func ReadDeck(path string) ([]SlideText, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer zr.Close()

	type numbered struct {
		n    int
		file *zip.File
	}
	var slideFiles []numbered
	for _, f := range zr.File {
		var n int
		if _, err := fmt.Sscanf(f.Name, "ppt/slides/slide%d.xml", &n); err == nil && !strings.Contains(f.Name, "_rels") {
			slideFiles = append(slideFiles, numbered{n, f})
		}
	}
	sort.Slice(slideFiles, func(i, j int) bool { return slideFiles[i].n < slideFiles[j].n })

	slides := make([]SlideText, 0, len(slideFiles))
	for _, sf := range slideFiles {
		slide, err := readSlide(sf.file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", sf.file.Name, err)
		}
		slides = append(slides, slide)
	}
	return slides, nil
}

// XML mirror of the slide shape tree; namespaces are matched by local name.
type xmlSlide struct {
	CSld struct {
		SpTree struct {
			Shapes []xmlShape `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

type xmlShape struct {
	NvSpPr struct {
		NvPr struct {
			Ph *struct {
				Type string `xml:"type,attr"`
			} `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody *struct {
		Paragraphs []struct {
			Runs []struct {
				Text string `xml:"t"`
			} `xml:"r"`
		} `xml:"p"`
	} `xml:"txBody"`
}

func readSlide(f *zip.File) (SlideText, error) {
	rc, err := f.Open()
	if err != nil {
		return SlideText{}, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return SlideText{}, err
	}

	var parsed xmlSlide
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return SlideText{}, err
	}

	var slide SlideText
	for _, sp := range parsed.CSld.SpTree.Shapes {
		if sp.TxBody == nil {
			continue
		}
		var paras []string
		for _, p := range sp.TxBody.Paragraphs {
			var text strings.Builder
			for _, r := range p.Runs {
				text.WriteString(r.Text)
			}
			if text.Len() > 0 {
				paras = append(paras, text.String())
			}
		}
		if len(paras) == 0 {
			continue
		}

		ph := sp.NvSpPr.NvPr.Ph
		switch {
		case ph != nil && (ph.Type == "title" || ph.Type == "ctrTitle"):
			slide.Title = paras[0]
		case ph != nil:
			slide.Bullets = append(slide.Bullets, paras...)
		default:
			slide.Annotations = append(slide.Annotations, paras...)
		}
	}
	return slide, nil
}
