// musial builds a variable positions table from per-sample VCFs against a
// reference: for every variable position of every locus, the genotype of
// every sample.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/storage"
	musial "github.com/Integrative-Transcriptomics/MUSIAL-sub002"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/analysis"
	_ "github.com/Integrative-Transcriptomics/MUSIAL-sub002/compileinfoprint"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/reference"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/sample"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

var (
	BufferSize = 4096 * 8
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

var client *storage.Client

func main() {
	defer STDOUT.Flush()

	// MUSIAL_* environment variables set the defaults; flags override them
	cfg := analysis.DefaultConfig()
	if err := envconfig.Process("MUSIAL", &cfg); err != nil {
		log.Fatalln(err)
	}

	var vcfs, features flagSlice
	var fastaPath, lociPath, gffPath, column string
	var sites, verbose bool
	flag.StringVar(&fastaPath, "fasta", "", "Reference FASTA (local or gs://, optionally compressed).")
	flag.StringVar(&lociPath, "loci", "", "Optional. Delimited locus list: id, contig, start, end[, strand]. 1-based, inclusive.")
	flag.StringVar(&gffPath, "gff", "", "Optional. GFF annotation to take --feature loci from.")
	flag.Var(&features, "feature", "Name or ID of a GFF feature to analyze. Pass once per feature. Requires --gff.")
	flag.Var(&vcfs, "vcf", "Sample VCF as [name=]path. The name also picks the column of a multi-sample VCF. Pass once per sample.")
	flag.StringVar(&column, "sample", "", "Optional. Sample column to read from --vcf files given without a name.")
	flag.Float64Var(&cfg.MinCoverage, "min-coverage", cfg.MinCoverage, "Positions covered by fewer reads are NoCall.")
	flag.Float64Var(&cfg.MinFrequency, "min-frequency", cfg.MinFrequency, "Minimum frequency of the dominant allele for a homozygous or reference call.")
	flag.Float64Var(&cfg.MinQuality, "min-quality", cfg.MinQuality, "Minimum QUAL for variant calls.")
	flag.BoolVar(&cfg.Heterozygous, "het", cfg.Heterozygous, "Call heterozygous positions?")
	flag.Float64Var(&cfg.MinHet, "min-het", cfg.MinHet, "Lower (exclusive) bound of the heterozygous frequency band.")
	flag.Float64Var(&cfg.MaxHet, "max-het", cfg.MaxHet, "Upper (exclusive) bound of the heterozygous frequency band.")
	flag.IntVar(&cfg.Threads, "threads", cfg.Threads, "Number of worker goroutines.")
	flag.BoolVar(&sites, "sites", false, "Print per-site genotype counts and HWE P-values to stderr?")
	flag.BoolVar(&verbose, "verbose", false, "Log per-record detail?")
	flag.Parse()

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	if fastaPath == "" || len(vcfs) == 0 {
		flag.PrintDefaults()
		log.Fatalln("--fasta and at least one --vcf are required")
	}
	if len(features) > 0 && gffPath == "" {
		log.Fatalln("--feature requires --gff")
	}

	ctx := context.Background()

	specs := make([]sample.Spec, 0, len(vcfs))
	paths := []string{fastaPath, gffPath, lociPath}
	for _, v := range vcfs {
		spec := sample.ParseSpec(v)
		if spec.Column == "" {
			spec.Column = column
		}
		specs = append(specs, spec)
		paths = append(paths, spec.Path)
	}

	for _, p := range paths {
		if musial.IsGoogleStoragePath(p) {
			var err error
			client, err = storage.NewClient(ctx)
			if err != nil {
				log.Fatalln(err)
			}
			break
		}
	}

	loci, err := loadLoci(ctx, fastaPath, lociPath, gffPath, features)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("Loaded %d loci", len(loci))

	sources, err := sample.OpenAll(ctx, specs, client)
	if err != nil {
		log.Fatalln(err)
	}

	table, report, err := analysis.Run(loci, sources, cfg)
	if err != nil {
		log.Fatalln(err)
	}

	if err := printTable(STDOUT, table); err != nil {
		log.Fatalln(err)
	}

	printSamples(report)
	if sites {
		printSites(os.Stderr, report)
	}
}

// loadLoci picks loci from a list, from GFF features, or falls back to every
// contig of the FASTA.
func loadLoci(ctx context.Context, fastaPath, lociPath, gffPath string, features []string) ([]locus.Locus, error) {
	genome, err := reference.OpenFASTA(ctx, fastaPath, client)
	if err != nil {
		return nil, err
	}

	out := make([]locus.Locus, 0)

	if lociPath != "" {
		list, err := locus.OpenList(musial.ExpandHome(lociPath))
		if err != nil {
			return nil, err
		}
		rows, err := list.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", lociPath, err)
		}
		listed, err := genome.FromList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, listed...)
	}

	if len(features) > 0 {
		annotated, err := reference.OpenGFF(ctx, gffPath, client)
		if err != nil {
			return nil, err
		}
		named, err := genome.FromFeatures(annotated, features)
		if err != nil {
			return nil, err
		}
		out = append(out, named...)
	}

	if len(out) == 0 {
		return genome.WholeContigs()
	}

	return out, nil
}
