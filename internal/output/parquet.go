package output

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/lehigh-university-libraries/marc2csv/internal/projection"
)

// ParquetRecord is the columnar layout of a projected row.
type ParquetRecord struct {
	MMSID                             string   `parquet:"mms_id"`
	PublicationDate                   *int64   `parquet:"publication_date,optional"`
	PublicationCountry                []string `parquet:"publication_country,list"`
	ISBN                              []string `parquet:"isbn,list"`
	LanguageOfOriginal                []string `parquet:"language_of_original,list"`
	LanguageOfIntermediateTranslation []string `parquet:"language_of_intermediate_translation,list"`
	UDC                               []string `parquet:"udc,list"`
	OtherClassificationNumber         []string `parquet:"other_classification_number,list"`
	Creator                           []string `parquet:"creator,list"`
	Title                             string   `parquet:"title"`
	TitleOfOriginal                   string   `parquet:"title_of_original"`
	Edition                           []string `parquet:"edition,list"`
	PublicationPlace                  []string `parquet:"publication_place,list"`
	Extent                            []string `parquet:"extent,list"`
	FormOfWork                        []string `parquet:"form_of_work,list"`
	AudienceCharacteristics           []string `parquet:"audience_characteristics,list"`
	ContributorCharacteristics        []string `parquet:"contributor_characteristics,list"`
	Genre                             []string `parquet:"genre,list"`
	Cocreator                         []string `parquet:"cocreator,list"`
	CocreatorOnlyTranslator           []string `parquet:"cocreator_only_translator,list"`
	CocreatorWithoutTranslator        []string `parquet:"cocreator_without_translator,list"`
	PublisherUniformName              []string `parquet:"publisher_uniform_name,list"`
	SeriesPersonal                    []string `parquet:"series_personal,list"`
	SeriesTitle                       []string `parquet:"series_title,list"`
	IsSelectedValue                   int32    `parquet:"is_selected_value"`
}

func toParquet(r projection.Row) ParquetRecord {
	var date *int64
	if r.PublicationDate != nil {
		d := int64(*r.PublicationDate)
		date = &d
	}
	return ParquetRecord{
		MMSID:                             r.MMSID,
		PublicationDate:                   date,
		PublicationCountry:                r.PublicationCountry,
		ISBN:                              r.ISBN,
		LanguageOfOriginal:                r.LanguageOfOriginal,
		LanguageOfIntermediateTranslation: r.LanguageOfIntermediateTranslation,
		UDC:                               r.UDC,
		OtherClassificationNumber:         r.OtherClassificationNumber,
		Creator:                           r.Creator,
		Title:                             r.Title,
		TitleOfOriginal:                   r.TitleOfOriginal,
		Edition:                           r.Edition,
		PublicationPlace:                  r.PublicationPlace,
		Extent:                            r.Extent,
		FormOfWork:                        r.FormOfWork,
		AudienceCharacteristics:           r.AudienceCharacteristics,
		ContributorCharacteristics:        r.ContributorCharacteristics,
		Genre:                             r.Genre,
		Cocreator:                         r.Cocreator,
		CocreatorOnlyTranslator:           r.CocreatorOnlyTranslator,
		CocreatorWithoutTranslator:        r.CocreatorWithoutTranslator,
		PublisherUniformName:              r.PublisherUniformName,
		SeriesPersonal:                    r.SeriesPersonal,
		SeriesTitle:                       r.SeriesTitle,
		IsSelectedValue:                   int32(r.IsSelectedValue),
	}
}

// ParquetWriter streams rows into a single parquet file. Parquet files
// cannot be appended to, so an existing file at path is replaced.
type ParquetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[ParquetRecord]
}

// NewParquetWriter creates path and prepares the schema.
func NewParquetWriter(path string) (*ParquetWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet output: %w", err)
	}
	return &ParquetWriter{
		file:   file,
		writer: parquet.NewGenericWriter[ParquetRecord](file),
	}, nil
}

// WriteRows appends rows to the current row group.
func (w *ParquetWriter) WriteRows(rows []projection.Row) error {
	records := make([]ParquetRecord, len(rows))
	for i, r := range rows {
		records[i] = toParquet(r)
	}
	if _, err := w.writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	return nil
}

// Close writes the footer and closes the file.
func (w *ParquetWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to finalize parquet output: %w", err)
	}
	return w.file.Close()
}
